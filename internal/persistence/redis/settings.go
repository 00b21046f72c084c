package redis

import (
	"errors"
	"fmt"
	"net"

	"github.com/qdm12/gosettings"
	"github.com/qdm12/gotree"
)

type Settings struct {
	Address  string
	Password string
	DB       *int
	Key      string
}

func (s *Settings) SetDefaults() {
	s.Address = gosettings.DefaultComparable(s.Address, "localhost:6379")
	s.DB = gosettings.DefaultPointer(s.DB, 0)
	s.Key = gosettings.DefaultComparable(s.Key, "findyourip:visitor_count")
}

var (
	ErrDBNegative = errors.New("database index is negative")
	ErrKeyEmpty   = errors.New("key is empty")
)

func (s Settings) Validate() (err error) {
	_, _, err = net.SplitHostPort(s.Address)
	if err != nil {
		return fmt.Errorf("address: %w", err)
	}

	if *s.DB < 0 {
		return fmt.Errorf("%w: %d", ErrDBNegative, *s.DB)
	}

	if s.Key == "" {
		return fmt.Errorf("%w", ErrKeyEmpty)
	}
	return nil
}

func (s Settings) String() string {
	return s.ToLinesNode().String()
}

func (s Settings) ToLinesNode() *gotree.Node {
	node := gotree.New("Redis")
	node.Appendf("Address: %s", s.Address)
	if s.Password != "" {
		node.Appendf("Password: [set]")
	}
	node.Appendf("Database: %d", *s.DB)
	node.Appendf("Key: %s", s.Key)
	return node
}
