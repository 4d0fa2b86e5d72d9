package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gura-conf/gura-go/env"
	"github.com/gura-conf/gura-go/internal/cursor"
	"github.com/gura-conf/gura-go/parser"
	"github.com/gura-conf/gura-go/value"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse file.ura",
	Short: "Parse a Gura file and print its value tree as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			_ = cmd.Help()
			return errors.New("need to specify argument <file.ura>")
		}
		v, err := parseFile(args[0])
		if err != nil {
			return err
		}
		enc, err := json.MarshalIndent(toJSON(v), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(enc))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parseFile(path string) (value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return value.Value{}, err
	}
	c := cursor.New(path, string(data))
	e := env.New(filepath.Dir(path)).WithLogger(logger())
	v, ok := parser.Parse(c, e)
	if !ok {
		return value.Value{}, fmt.Errorf("%s", c.Err.Error())
	}
	return v, nil
}

// toJSON converts a value.Value into a plain Go value suitable for
// json.Marshal, since Value itself carries no struct tags.
func toJSON(v value.Value) any {
	switch v.Kind() {
	case value.Null:
		return nil
	case value.Bool:
		return v.Bool()
	case value.Integer:
		return v.Int()
	case value.Float:
		return v.Float64()
	case value.String:
		return v.Str()
	case value.Array:
		items := v.Items()
		out := make([]any, len(items))
		for i, it := range items {
			out[i] = toJSON(it)
		}
		return out
	case value.ObjectKind:
		out := make(map[string]any)
		v.Object().Each(func(key string, val value.Value) bool {
			out[key] = toJSON(val)
			return true
		})
		return out
	default:
		return nil
	}
}
