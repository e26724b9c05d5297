package directory

import (
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	ldap "github.com/lkarlslund/ldap/v3"
)

type TLSmode byte

const (
	TLS TLSmode = iota
	StartTLS
	NoTLS
)

func TLSmodeString(s string) (TLSmode, error) {
	switch strings.ToLower(s) {
	case "tls":
		return TLS, nil
	case "starttls":
		return StartTLS, nil
	case "notls":
		return NoTLS, nil
	}
	return TLS, fmt.Errorf("unknown TLS mode %v", s)
}

// AD is a single use connection to a domain controller. Acquire one per
// request, release it with Disconnect on every exit path.
type AD struct {
	Domain     string
	Server     string
	Port       uint16
	User       string
	Password   string
	AuthDomain string
	Base       string
	TLSMode    TLSmode
	IgnoreCert bool

	conn *ldap.Conn
}

func (ad *AD) Connect(authmode byte) error {
	if ad.AuthDomain == "" {
		ad.AuthDomain = ad.Domain
	}
	switch ad.TLSMode {
	case NoTLS:
		conn, err := ldap.Dial("tcp", fmt.Sprintf("%s:%d", ad.Server, ad.Port))
		if err != nil {
			return errors.Wrapf(err, "dialing %v:%v", ad.Server, ad.Port)
		}
		ad.conn = conn
	case StartTLS:
		conn, err := ldap.Dial("tcp", fmt.Sprintf("%s:%d", ad.Server, ad.Port))
		if err != nil {
			return errors.Wrapf(err, "dialing %v:%v", ad.Server, ad.Port)
		}

		err = conn.StartTLS(&tls.Config{ServerName: ad.Server})
		if err != nil {
			return errors.Wrap(err, "negotiating StartTLS")
		}
		ad.conn = conn
	case TLS:
		config := &tls.Config{
			ServerName:         ad.Server,
			InsecureSkipVerify: ad.IgnoreCert,
		}
		conn, err := ldap.DialTLS("tcp", fmt.Sprintf("%s:%d", ad.Server, ad.Port), config)
		if err != nil {
			return errors.Wrapf(err, "dialing %v:%v with TLS", ad.Server, ad.Port)
		}
		ad.conn = conn
	default:
		return errors.New("unknown transport mode")
	}

	var err error
	switch authmode {
	case 0:
		err = ad.conn.UnauthenticatedBind(ad.User)
	case 1:
		err = ad.conn.Bind(ad.User, ad.Password)
	case 2:
		err = ad.conn.MD5Bind(ad.AuthDomain, ad.User, ad.Password)
	case 3:
		err = ad.conn.NTLMBind(ad.AuthDomain, ad.User, ad.Password)
	case 4:
		err = ad.conn.NTLMBindWithHash(ad.AuthDomain, ad.User, ad.Password)
	case 5:
		err = ad.conn.NTLMSSPIBind()
	default:
		return fmt.Errorf("unknown bind method %v", authmode)
	}
	if err != nil {
		return errors.Wrap(err, "binding to directory")
	}

	return nil
}

func (ad *AD) Disconnect() error {
	if ad.conn == nil {
		return errors.New("not connected")
	}
	ad.conn.Close()
	ad.conn = nil
	return nil
}

func (ad *AD) RootDn() string {
	return "dc=" + strings.Replace(ad.Domain, ".", ",dc=", -1)
}

// BaseDn is the search base for subtree operations, defaulting to the
// domain naming context.
func (ad *AD) BaseDn() string {
	if ad.Base != "" {
		return ad.Base
	}
	return ad.RootDn()
}
