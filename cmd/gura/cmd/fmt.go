package cmd

import (
	"errors"
	"fmt"

	"github.com/gura-conf/gura-go/serializer"
	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt file.ura",
	Short: "Parse a Gura file and print its canonical serialization",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			_ = cmd.Help()
			return errors.New("need to specify argument <file.ura>")
		}
		v, err := parseFile(args[0])
		if err != nil {
			return err
		}
		fmt.Print(serializer.Dump(v))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
}
