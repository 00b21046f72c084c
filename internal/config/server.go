package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gosettings/validate"
	"github.com/qdm12/gotree"
)

type Server struct {
	ListeningAddress  string
	RootURL           string
	TrustProxyHeaders *bool
	MetricsEnabled    *bool
}

func (s *Server) setDefaults() {
	s.ListeningAddress = gosettings.DefaultComparable(s.ListeningAddress, ":8000")
	s.RootURL = gosettings.DefaultComparable(s.RootURL, "/")
	s.TrustProxyHeaders = gosettings.DefaultPointer(s.TrustProxyHeaders, false)
	s.MetricsEnabled = gosettings.DefaultPointer(s.MetricsEnabled, true)
}

var ErrRootURLNotAbsolute = errors.New("root URL does not start with /")

func (s Server) Validate() (err error) {
	err = validate.ListeningAddress(s.ListeningAddress, os.Getuid())
	if err != nil {
		return fmt.Errorf("listening address: %w", err)
	}

	if !strings.HasPrefix(s.RootURL, "/") {
		return fmt.Errorf("%w: %s", ErrRootURLNotAbsolute, s.RootURL)
	}

	return nil
}

func (s Server) String() string {
	return s.toLinesNode().String()
}

func (s Server) toLinesNode() *gotree.Node {
	node := gotree.New("Server")
	node.Appendf("Listening address: %s", s.ListeningAddress)
	node.Appendf("Root URL: %s", s.RootURL)
	node.Appendf("Trust proxy headers: %s", gosettings.BoolToYesNo(s.TrustProxyHeaders))
	node.Appendf("Metrics enabled: %s", gosettings.BoolToYesNo(s.MetricsEnabled))
	return node
}

func (s *Server) read(r *reader.Reader) (err error) {
	s.ListeningAddress = r.String("LISTENING_ADDRESS")
	s.RootURL = r.String("ROOT_URL", reader.ForceLowercase(false))

	s.TrustProxyHeaders, err = r.BoolPtr("SERVER_TRUST_PROXY_HEADERS")
	if err != nil {
		return err
	}

	s.MetricsEnabled, err = r.BoolPtr("METRICS_ENABLED")
	if err != nil {
		return err
	}

	return nil
}
