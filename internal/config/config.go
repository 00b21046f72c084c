package config

import (
	"fmt"

	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
)

type Config struct {
	Client      Client
	Server      Server
	Geolocation Geolocation
	Lookup      Lookup
	Counter     Counter
	Health      Health
	Paths       Paths
	Backup      Backup
	Logger      Logger
	Shoutrrr    Shoutrrr
}

func (c *Config) SetDefaults() {
	c.Client.setDefaults()
	c.Server.setDefaults()
	c.Geolocation.setDefaults()
	c.Lookup.setDefaults()
	c.Counter.setDefaults()
	c.Health.SetDefaults()
	c.Paths.setDefaults()
	c.Backup.setDefaults()
	c.Logger.setDefaults()
	c.Shoutrrr.setDefaults()
}

func (c Config) Validate() (err error) {
	type validator interface {
		Validate() (err error)
	}
	toValidate := []struct {
		name      string
		validator validator
	}{
		{"client", &c.Client},
		{"server", &c.Server},
		{"geolocation", &c.Geolocation},
		{"lookup", &c.Lookup},
		{"counter", &c.Counter},
		{"health", &c.Health},
		{"paths", &c.Paths},
		{"backup", &c.Backup},
		{"logger", &c.Logger},
		{"shoutrrr", &c.Shoutrrr},
	}

	for _, v := range toValidate {
		err = v.validator.Validate()
		if err != nil {
			return fmt.Errorf("%s settings: %w", v.name, err)
		}
	}

	return nil
}

func (c Config) String() string {
	return c.toLinesNode().String()
}

func (c Config) toLinesNode() *gotree.Node {
	node := gotree.New("Settings summary:")
	node.AppendNode(c.Client.toLinesNode())
	node.AppendNode(c.Server.toLinesNode())
	node.AppendNode(c.Geolocation.toLinesNode())
	node.AppendNode(c.Lookup.toLinesNode())
	node.AppendNode(c.Counter.toLinesNode())
	node.AppendNode(c.Health.toLinesNode())
	node.AppendNode(c.Paths.toLinesNode())
	node.AppendNode(c.Backup.toLinesNode())
	node.AppendNode(c.Logger.toLinesNode())
	node.AppendNode(c.Shoutrrr.ToLinesNode())
	return node
}

func (c *Config) Read(reader *reader.Reader) (err error) {
	err = c.Client.read(reader)
	if err != nil {
		return fmt.Errorf("reading client settings: %w", err)
	}

	err = c.Server.read(reader)
	if err != nil {
		return fmt.Errorf("reading server settings: %w", err)
	}

	err = c.Geolocation.read(reader)
	if err != nil {
		return fmt.Errorf("reading geolocation settings: %w", err)
	}

	err = c.Lookup.read(reader)
	if err != nil {
		return fmt.Errorf("reading lookup settings: %w", err)
	}

	err = c.Counter.read(reader)
	if err != nil {
		return fmt.Errorf("reading counter settings: %w", err)
	}

	c.Health.Read(reader)
	c.Paths.read(reader)

	err = c.Backup.read(reader)
	if err != nil {
		return fmt.Errorf("reading backup settings: %w", err)
	}

	err = c.Logger.read(reader)
	if err != nil {
		return fmt.Errorf("reading logger settings: %w", err)
	}

	c.Shoutrrr.read(reader)

	return nil
}
