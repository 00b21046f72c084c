package shoutrrr

import (
	"fmt"

	"github.com/containrrr/shoutrrr"
	"github.com/qdm12/gosettings"
)

type Settings struct {
	// Addresses are the Shoutrrr service URLs to notify.
	// No address disables notifications.
	Addresses []string
	// DefaultTitle is the notification title used for addresses
	// not already specifying a title query parameter.
	DefaultTitle string
	Logger       Erroer
}

func (s *Settings) setDefaults() {
	s.Addresses = gosettings.DefaultSlice(s.Addresses, []string{})
	s.DefaultTitle = gosettings.DefaultComparable(s.DefaultTitle, "Find your IP")
	if s.Logger == nil {
		s.Logger = noopLogger{}
	}
}

func (s Settings) validate() (err error) {
	if len(s.Addresses) == 0 {
		return nil
	}
	_, err = shoutrrr.CreateSender(s.Addresses...)
	if err != nil {
		return fmt.Errorf("shoutrrr addresses: %w", err)
	}
	return nil
}

type Erroer interface {
	Error(s string)
}

type noopLogger struct{}

func (noopLogger) Error(_ string) {}
