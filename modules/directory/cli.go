package directory

import (
	"fmt"
	"net"
	"os"
	"runtime"
	"strings"
	"syscall"

	"github.com/pkg/errors"

	"github.com/Showmax/go-fqdn"
	"github.com/chrisdfennell/ad-tools/modules/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	autodetect = true

	server     string
	port       int
	domain     string
	user       string
	pass       string
	base       string
	authdomain string

	tlsmodeString  string
	authmodeString string
	ignoreCert     bool

	tlsmode  TLSmode
	authmode byte
)

// AddFlags attaches the directory connection flags to a command. Several
// commands share the same backing variables, so the last parsed command
// wins, which is fine as cobra runs exactly one.
func AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&autodetect, "autodetect", true, "Try to autodetect as much as we can, this will use environment variables and DNS to make this easy")
	cmd.Flags().StringVar(&server, "server", "", "DC to connect to, use IP or full hostname, random DC is auto-detected if not supplied")
	cmd.Flags().IntVar(&port, "port", 636, "LDAP port to connect to (389 or 636 typical)")
	cmd.Flags().StringVar(&domain, "domain", "", "domain suffix to analyze (contoso.local, auto-detected if not supplied)")
	cmd.Flags().StringVar(&user, "username", "", "username to connect with (someuser@contoso.local)")
	cmd.Flags().StringVar(&pass, "password", "", "password to connect with ex. --password hunter42")
	cmd.Flags().StringVar(&base, "base", "", "search base for SID resolution and OU sweeps, defaults to the domain naming context")
	cmd.Flags().StringVar(&authdomain, "authdomain", "", "domain for authentication, if using ntlm auth")
	cmd.Flags().StringVar(&tlsmodeString, "tlsmode", "TLS", "Transport mode (TLS, StartTLS, NoTLS)")
	cmd.Flags().BoolVar(&ignoreCert, "ignorecert", false, "Disable certificate checks")

	defaultmode := "ntlm"
	if runtime.GOOS == "windows" {
		defaultmode = "ntlmsspi"
	}
	cmd.Flags().StringVar(&authmodeString, "authmode", defaultmode, "Bind mode: unauth, simple, md5, ntlm, ntlmpth (password is hash), ntlmsspi (integrated Windows)")
}

// PreRun checks that we have enough data to proceed with the real run
func PreRun(cmd *cobra.Command, args []string) error {
	var err error
	tlsmode, err = TLSmodeString(tlsmodeString)
	if err != nil {
		return err
	}

	switch strings.ToLower(authmodeString) {
	case "unauth":
		authmode = 0
	case "simple":
		authmode = 1
	case "md5":
		authmode = 2
	case "ntlm":
		authmode = 3
	case "ntlmpth":
		authmode = 4
	case "ntlmsspi":
		authmode = 5
	default:
		return fmt.Errorf("unknown LDAP authentication mode %v", authmodeString)
	}

	if autodetect && server == "" {
		// We only need to auto-detect the domain if the server is not supplied
		if domain == "" {
			ui.Info().Msg("No domain supplied, auto-detecting")
			domain = strings.ToLower(os.Getenv("USERDNSDOMAIN"))
			if domain == "" {
				// That didn't work, lets try something else
				f, err := fqdn.FqdnHostname()
				if err == nil && strings.Contains(f, ".") {
					ui.Info().Msg("No USERDNSDOMAIN set - using machines FQDN as basis")
					domain = strings.ToLower(f[strings.Index(f, ".")+1:])
				}
			}
			if domain == "" {
				return errors.New("domain auto-detection failed")
			}
			ui.Info().Msgf("Auto-detected domain as %v", domain)
		}

		// Auto-detect server
		cname, servers, err := net.LookupSRV("", "", "_ldap._tcp.dc._msdcs."+domain)
		if err == nil && cname != "" && len(servers) != 0 {
			server = strings.TrimRight(servers[0].Target, ".")
			ui.Info().Msgf("AD controller detected as: %v", server)
		} else {
			return errors.New("AD controller auto-detection failed, use '--server' parameter")
		}

		if authmode != 5 && user == "" {
			// Auto-detect user
			user = os.Getenv("USERNAME")
			if user != "" {
				ui.Info().Msgf("Auto-detected username as %v", user)
			} else {
				return errors.New("username autodetection failed - please use '--username' parameter")
			}
		}
	}

	if len(server) == 0 {
		return errors.New("missing AD controller server name - please provide this on commandline")
	}

	if authmode == 5 && pass != "" {
		return errors.New("you supplied a password, but authmode is set to NTLMSSPI (integrated authentication), please change authmode or do not supply a password")
	}

	if authmode != 5 {
		if user == "" {
			return errors.New("missing username - please use '--username' parameter")
		}

		if authmode != 3 {
			if domain != "" && !strings.Contains(user, "@") && !strings.Contains(user, "\\") {
				user = user + "@" + domain
				ui.Info().Msgf("Username does not contain @ or \\, auto expanding it to %v", user)
			}
		}

		if pass == "" {
			fmt.Printf("Please enter password for %v: ", user)
			passwd, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err == nil {
				pass = string(passwd)
			}
		}
	} else {
		ui.Info().Msg("Using integrated NTLM authentication")
	}

	if authmode == 3 && authdomain == "" {
		return errors.New("missing authdomain for NTLM - please use '--authdomain' parameter")
	}

	return nil
}

// FromFlags builds and binds a fresh single use connection from the
// parsed command line flags.
func FromFlags() (*AD, error) {
	ad := AD{
		Domain:     domain,
		Server:     server,
		Port:       uint16(port),
		User:       user,
		Password:   pass,
		AuthDomain: authdomain,
		Base:       base,
		TLSMode:    tlsmode,
		IgnoreCert: ignoreCert,
	}
	if err := ad.Connect(authmode); err != nil {
		return nil, err
	}
	return &ad, nil
}
