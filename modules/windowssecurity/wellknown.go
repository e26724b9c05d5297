package windowssecurity

// KnownSIDs maps well-known SID strings to display labels. Immutable after
// process start, safe for unsynchronized concurrent reads.
var KnownSIDs = map[string]string{
	"S-1-0":        "Null Authority",
	"S-1-0-0":      "Nobody",
	"S-1-1":        "World Authority",
	"S-1-1-0":      "Everyone",
	"S-1-2":        "Local Authority",
	"S-1-2-0":      "Local",
	"S-1-3":        "Creator Authority",
	"S-1-3-0":      "Creator Owner",
	"S-1-3-1":      "Creator Group",
	"S-1-3-2":      "Creator Owner Server",
	"S-1-3-3":      "Creator Group Server",
	"S-1-3-4":      "Owner Rights",
	"S-1-5":        "NT Authority",
	"S-1-5-1":      "Dialup",
	"S-1-5-2":      "Network",
	"S-1-5-3":      "Batch",
	"S-1-5-4":      "Interactive",
	"S-1-5-6":      "Service",
	"S-1-5-7":      "Anonymous Logon",
	"S-1-5-8":      "Proxy",
	"S-1-5-9":      "Enterprise Domain Controllers",
	"S-1-5-10":     "Self",
	"S-1-5-11":     "Authenticated Users",
	"S-1-5-12":     "Restricted Code",
	"S-1-5-13":     "Terminal Server Users",
	"S-1-5-14":     "Remote Interactive Logon",
	"S-1-5-15":     "This Organization",
	"S-1-5-17":     "IUSR",
	"S-1-5-18":     "SYSTEM",
	"S-1-5-19":     "Local Service",
	"S-1-5-20":     "Network Service",
	"S-1-5-32-544": "BUILTIN\\Administrators",
	"S-1-5-32-545": "BUILTIN\\Users",
	"S-1-5-32-546": "BUILTIN\\Guests",
	"S-1-5-32-547": "BUILTIN\\Power Users",
	"S-1-5-32-548": "BUILTIN\\Account Operators",
	"S-1-5-32-549": "BUILTIN\\Server Operators",
	"S-1-5-32-550": "BUILTIN\\Print Operators",
	"S-1-5-32-551": "BUILTIN\\Backup Operators",
	"S-1-5-32-552": "BUILTIN\\Replicator",
	"S-1-5-32-554": "BUILTIN\\Pre-Windows 2000 Compatible Access",
	"S-1-5-32-555": "BUILTIN\\Remote Desktop Users",
	"S-1-5-32-556": "BUILTIN\\Network Configuration Operators",
	"S-1-5-32-557": "BUILTIN\\Incoming Forest Trust Builders",
	"S-1-5-32-558": "BUILTIN\\Performance Monitor Users",
	"S-1-5-32-559": "BUILTIN\\Performance Log Users",
	"S-1-5-32-560": "BUILTIN\\Windows Authorization Access Group",
	"S-1-5-32-561": "BUILTIN\\Terminal Server License Servers",
	"S-1-5-32-562": "BUILTIN\\Distributed COM Users",
	"S-1-5-32-569": "BUILTIN\\Cryptographic Operators",
	"S-1-5-32-573": "BUILTIN\\Event Log Readers",
	"S-1-5-32-574": "BUILTIN\\Certificate Service DCOM Access",
	"S-1-5-64-10":  "NTLM Authentication",
	"S-1-5-64-14":  "SChannel Authentication",
	"S-1-5-64-21":  "Digest Authentication",
	"S-1-5-80":     "NT Service",
	"S-1-5-80-0":   "All Services",
	"S-1-5-83-0":   "NT Virtual Machine - Virtual Machines",
}

var (
	EveryoneSID, _              = ParseStringSID("S-1-1-0")
	CreatorOwnerSID, _          = ParseStringSID("S-1-3-0")
	SelfSID, _                  = ParseStringSID("S-1-5-10")
	AuthenticatedUsersSID, _    = ParseStringSID("S-1-5-11")
	SystemSID, _                = ParseStringSID("S-1-5-18")
	AdministratorsSID, _        = ParseStringSID("S-1-5-32-544")
	AccountOperatorsSID, _      = ParseStringSID("S-1-5-32-548")
	EnterpriseDomainControllers = MustParseStringSID("S-1-5-9")
)
