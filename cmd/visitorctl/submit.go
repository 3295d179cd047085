package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"visitor-registration/pkg/flow"
	"visitor-registration/pkg/validation"
)

type submitOptions struct {
	endpoint    string
	lang        string
	timeout     time.Duration
	noticePath  string
	acceptTerms bool
	fields      map[string]*string
}

var fieldFlags = []struct {
	flag  string
	field string
	usage string
}{
	{"visitor-name", "visitorName", "visitor name"},
	{"phone", "phone", "visitor mobile number"},
	{"visit-date", "visitDate", "planned visit date"},
	{"visit-purpose", "visitPurpose", "purpose of visit"},
	{"host-name", "hostName", "name of the person visited"},
	{"host-phone", "hostPhone", "mobile number of the person visited"},
	{"id-number", "idNumber", "ID card number (optional)"},
	{"car-number", "carNumber", "car plate number (optional)"},
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "visitorctl",
		Short:         "Visitor registration client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSubmitCmd())
	return root
}

func newSubmitCmd() *cobra.Command {
	opts := &submitOptions{fields: map[string]*string{}}

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a visitor registration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.endpoint, "endpoint", "http://localhost:3001/api/visitor", "registration endpoint")
	flags.StringVar(&opts.lang, "lang", validation.LangZH, "message language (zh or en)")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "request timeout")
	flags.StringVar(&opts.noticePath, "notice", "", "visitor notice file to display before accepting")
	flags.BoolVar(&opts.acceptTerms, "accept-terms", false, "accept the visitor notice")
	for _, f := range fieldFlags {
		opts.fields[f.field] = flags.String(f.flag, "", f.usage)
	}

	return cmd
}

func runSubmit(cmd *cobra.Command, opts *submitOptions) error {
	out := cmd.OutOrStdout()
	form := flow.NewForm(flow.NewHTTPDispatcher(opts.endpoint, opts.timeout), opts.lang)

	for field, value := range opts.fields {
		if err := form.Set(field, *value); err != nil {
			return err
		}
	}

	state, err := form.Submit(cmd.Context())
	if state == flow.StateBlockedByTerms {
		if err := readNotice(out, form, opts); err != nil {
			return err
		}
		state, err = form.Submit(cmd.Context())
	}

	switch state {
	case flow.StateInvalid:
		printErrors(out, form.Errors())
		return errors.New("registration is invalid")
	case flow.StateSuccess:
		fmt.Fprintln(out, "Registration submitted")
		return nil
	default:
		return fmt.Errorf("registration failed, please try again: %w", err)
	}
}

// readNotice prints the whole notice, which counts as reading it to the end,
// then accepts it if the caller asked to.
func readNotice(out io.Writer, form *flow.Form, opts *submitOptions) error {
	lines := 0
	if opts.noticePath != "" {
		content, err := os.ReadFile(opts.noticePath)
		if err != nil {
			return fmt.Errorf("error reading notice: %w", err)
		}
		fmt.Fprintln(out, string(content))
		lines = strings.Count(string(content), "\n") + 1
	}

	form.OpenNotice(lines, lines)
	if !opts.acceptTerms {
		return errors.New("the visitor notice must be accepted (--accept-terms)")
	}
	return form.AcceptTerms()
}

func printErrors(out io.Writer, errs validation.Errors) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(out, "%s: %s\n", f, errs[f])
	}
}
