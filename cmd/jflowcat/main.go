// Command jflowcat reads JSON values from stdin (or files) and rewrites
// them to stdout, demonstrating the jflow scoped-handle API end to end.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arcspan/jflow"
)

var (
	escapeStrings bool
	quiet         bool
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jflowcat [files...]",
		Short: "Recompact and re-emit JSON using jflow's pull parser",
		Long: `jflowcat reads a sequence of whitespace-separated JSON values from the
given files (or stdin, if none are given) and rewrites each one to stdout
with no extraneous whitespace, driving a jflow.Parser and jflow.Emitter
against each other value by value.`,
		RunE: runCat,
	}
	cmd.Flags().BoolVar(&escapeStrings, "escape-strings", true, "re-escape string output instead of copying bytes verbatim")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress informational log lines (warnings are still shown)")

	viper.SetEnvPrefix("jflowcat")
	viper.AutomaticEnv()
	viper.BindPFlag("escape-strings", cmd.Flags().Lookup("escape-strings"))
	viper.BindPFlag("quiet", cmd.Flags().Lookup("quiet"))

	return cmd
}

func runCat(cmd *cobra.Command, args []string) error {
	if viper.GetBool("quiet") {
		log.SetLevel(log.WarnLevel)
	}

	readers, closeAll, err := openInputs(args)
	if err != nil {
		return err
	}
	defer closeAll()

	out := os.Stdout
	count := 0
	e := jflow.NewEmitter(out)
	for _, r := range readers {
		p := jflow.NewParser(r)
		for {
			v, err := p.Next()
			if err != nil {
				if se, ok := err.(*jflow.SyntaxError); ok {
					log.Warn("syntax error, skipping", "kind", se.Kind, "at", se.Location)
					continue
				}
				return fmt.Errorf("reading input: %w", err)
			}
			if v == nil {
				break
			}
			if err := recopy(*v, e, viper.GetBool("escape-strings")); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			count++
		}
	}
	log.Info("done", "values", count)
	return nil
}

func openInputs(args []string) ([]io.Reader, func(), error) {
	if len(args) == 0 {
		return []io.Reader{os.Stdin}, func() {}, nil
	}
	var readers []io.Reader
	var files []*os.File
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			for _, opened := range files {
				opened.Close()
			}
			return nil, nil, fmt.Errorf("opening %s: %w", path, err)
		}
		files = append(files, f)
		readers = append(readers, f)
	}
	return readers, func() {
		for _, f := range files {
			f.Close()
		}
	}, nil
}

// recopy drives a single parsed Value into e, recursively for arrays and
// objects. It is the CLI's worked example of the scoped-handle contract
// described in the package doc comment.
func recopy(v jflow.Value, e *jflow.Emitter, escape bool) error {
	switch v.Kind() {
	case jflow.NullValue:
		return e.Null()
	case jflow.BoolValue:
		b, _ := v.Bool()
		return e.Bool(b)
	case jflow.NumberValue:
		n, _ := v.Number()
		return e.Number(n)
	case jflow.StringValue:
		s, _ := v.String()
		defer s.Close()
		body, err := s.ReadOwned()
		if err != nil {
			return err
		}
		if escape {
			return e.EmitEscapedString(body)
		}
		return e.String(body)
	case jflow.ArrayValue:
		pa, _ := v.Array()
		defer pa.Close()
		ea := e.Array()
		for {
			elem, err := pa.Next()
			if err != nil {
				return err
			}
			if elem == nil {
				break
			}
			if err := recopyInArray(*elem, ea, escape); err != nil {
				return err
			}
		}
		return ea.Close()
	case jflow.ObjectValue:
		po, _ := v.Object()
		defer po.Close()
		eo := e.Object()
		for {
			kv, err := po.Next()
			if err != nil {
				return err
			}
			if kv == nil {
				break
			}
			ks := kv.Key()
			key, err := ks.ReadOwned()
			ks.Close()
			if err != nil {
				return err
			}
			val, err := kv.Value()
			if err != nil {
				kv.Close()
				return err
			}
			if err := recopyInObject(key, val, eo, escape); err != nil {
				kv.Close()
				return err
			}
			kv.Close()
		}
		return eo.Close()
	default:
		return fmt.Errorf("jflowcat: unhandled value kind %v", v.Kind())
	}
}

func recopyInArray(v jflow.Value, ea *jflow.EmitArray, escape bool) error {
	switch v.Kind() {
	case jflow.NullValue:
		return ea.Null()
	case jflow.BoolValue:
		b, _ := v.Bool()
		return ea.Bool(b)
	case jflow.NumberValue:
		n, _ := v.Number()
		return ea.Number(n)
	case jflow.StringValue:
		s, _ := v.String()
		defer s.Close()
		body, err := s.ReadOwned()
		if err != nil {
			return err
		}
		if escape {
			return ea.EmitEscapedString(body)
		}
		return ea.String(body)
	case jflow.ArrayValue:
		child := ea.Array()
		return recopyArrayInto(v, child, escape)
	case jflow.ObjectValue:
		child := ea.Object()
		return recopyObjectInto(v, child, escape)
	default:
		return fmt.Errorf("jflowcat: unhandled value kind %v", v.Kind())
	}
}

func recopyInObject(key string, v jflow.Value, eo *jflow.EmitObject, escape bool) error {
	switch v.Kind() {
	case jflow.NullValue:
		return eo.Null(key)
	case jflow.BoolValue:
		b, _ := v.Bool()
		return eo.Bool(key, b)
	case jflow.NumberValue:
		n, _ := v.Number()
		return eo.Number(key, n)
	case jflow.StringValue:
		s, _ := v.String()
		defer s.Close()
		body, err := s.ReadOwned()
		if err != nil {
			return err
		}
		if escape {
			return eo.EmitEscapedString(key, body)
		}
		return eo.String(key, body)
	case jflow.ArrayValue:
		child := eo.Array(key)
		return recopyArrayInto(v, child, escape)
	case jflow.ObjectValue:
		child := eo.Object(key)
		return recopyObjectInto(v, child, escape)
	default:
		return fmt.Errorf("jflowcat: unhandled value kind %v", v.Kind())
	}
}

func recopyArrayInto(v jflow.Value, ea *jflow.EmitArray, escape bool) error {
	pa, _ := v.Array()
	defer pa.Close()
	for {
		elem, err := pa.Next()
		if err != nil {
			return err
		}
		if elem == nil {
			break
		}
		if err := recopyInArray(*elem, ea, escape); err != nil {
			return err
		}
	}
	return ea.Close()
}

func recopyObjectInto(v jflow.Value, eo *jflow.EmitObject, escape bool) error {
	po, _ := v.Object()
	defer po.Close()
	for {
		kv, err := po.Next()
		if err != nil {
			return err
		}
		if kv == nil {
			break
		}
		ks := kv.Key()
		key, err := ks.ReadOwned()
		ks.Close()
		if err != nil {
			kv.Close()
			return err
		}
		val, err := kv.Value()
		if err != nil {
			kv.Close()
			return err
		}
		if err := recopyInObject(key, val, eo, escape); err != nil {
			kv.Close()
			return err
		}
		kv.Close()
	}
	return eo.Close()
}
