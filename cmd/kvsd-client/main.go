// Command kvsd-client sends a single set/get/rm command to a kvsd server
// and prints the reply.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/iamNilotpal/kvsd/internal/client"
	"github.com/iamNilotpal/kvsd/pkg/netaddr"
)

type setCmd struct {
	Key   string `arg:"" help:"Key to set."`
	Value string `arg:"" help:"Value to associate with key."`
	Addr  string `short:"a" help:"Server address, IPv4:port." default:"127.0.0.1:4000"`
}

func (c *setCmd) Run() error {
	if err := netaddr.Validate(c.Addr); err != nil {
		return err
	}
	return client.New(c.Addr).Set(c.Key, c.Value)
}

type getCmd struct {
	Key  string `arg:"" help:"Key to look up."`
	Addr string `short:"a" help:"Server address, IPv4:port." default:"127.0.0.1:4000"`
}

func (c *getCmd) Run() error {
	if err := netaddr.Validate(c.Addr); err != nil {
		return err
	}
	value, ok, err := client.New(c.Addr).Get(c.Key)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Key not found")
		return nil
	}
	fmt.Println(value)
	return nil
}

type rmCmd struct {
	Key  string `arg:"" help:"Key to remove."`
	Addr string `short:"a" help:"Server address, IPv4:port." default:"127.0.0.1:4000"`
}

func (c *rmCmd) Run() error {
	if err := netaddr.Validate(c.Addr); err != nil {
		return err
	}
	if err := client.New(c.Addr).Remove(c.Key); err != nil {
		fmt.Fprintln(os.Stderr, "Key not found")
		os.Exit(1)
	}
	return nil
}

var cli struct {
	Set setCmd `cmd:"" help:"Set the value of a key."`
	Get getCmd `cmd:"" help:"Get the value of a key."`
	Rm  rmCmd  `cmd:"" help:"Remove a key."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("kvsd-client"),
		kong.Description("kvsd client"),
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
