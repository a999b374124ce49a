// Command bookclient talks to a running bookshop server.
//
//	bookclient books list
//	bookclient books author "Margaret Atwood"
//	bookclient register --username alice --email alice@example.com
//	export BOOKSHOP_TOKEN=$(bookclient login --username alice --token-only)
//	bookclient reviews put 978-0-14-303490-2 --rating 5 --text "Great"
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/iliyamo/bookshop/internal/client"
)

type options struct {
	baseURL string
	token   string
	timeout time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "bookclient",
		Short:         "Command line client for the bookshop API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.baseURL, "url", envOr("BOOKSHOP_URL", client.DefaultBaseURL), "server base URL")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("BOOKSHOP_TOKEN"), "bearer token for review writes")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")

	root.AddCommand(newBooksCmd(opts), newRegisterCmd(opts), newLoginCmd(opts), newReviewsCmd(opts))
	return root
}

func (o *options) client() *client.Client {
	c := client.New(o.baseURL)
	c.Token = o.token
	return c
}

func (o *options) ctx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

func newBooksCmd(opts *options) *cobra.Command {
	books := &cobra.Command{Use: "books", Short: "Browse the catalog"}
	books.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every book",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ctx, cancel := opts.ctx(cmd)
				defer cancel()
				res, err := opts.client().ListBooks(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			},
		},
		&cobra.Command{
			Use:   "isbn ISBN",
			Short: "Show the book with an exact ISBN",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := opts.ctx(cmd)
				defer cancel()
				res, err := opts.client().BookByISBN(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			},
		},
		&cobra.Command{
			Use:   "author NAME",
			Short: "Find books whose author contains NAME",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := opts.ctx(cmd)
				defer cancel()
				res, err := opts.client().BooksByAuthor(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			},
		},
		&cobra.Command{
			Use:   "title TEXT",
			Short: "Find books whose title contains TEXT",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := opts.ctx(cmd)
				defer cancel()
				res, err := opts.client().BooksByTitle(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			},
		},
	)
	return books
}

func newRegisterCmd(opts *options) *cobra.Command {
	var username, email string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword(cmd, "Password: ")
			if err != nil {
				return err
			}
			ctx, cancel := opts.ctx(cmd)
			defer cancel()
			u, err := opts.client().Register(ctx, username, email, password)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "account name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLoginCmd(opts *options) *cobra.Command {
	var username string
	var tokenOnly bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print an access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword(cmd, "Password: ")
			if err != nil {
				return err
			}
			ctx, cancel := opts.ctx(cmd)
			defer cancel()
			res, err := opts.client().Login(ctx, username, password)
			if err != nil {
				return err
			}
			if tokenOnly {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), res.Token)
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "account name")
	cmd.Flags().BoolVar(&tokenOnly, "token-only", false, "print only the token")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newReviewsCmd(opts *options) *cobra.Command {
	reviews := &cobra.Command{Use: "reviews", Short: "Read and write book reviews"}

	list := &cobra.Command{
		Use:   "list ISBN",
		Short: "List reviews of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.ctx(cmd)
			defer cancel()
			res, err := opts.client().Reviews(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	var text string
	var rating int
	put := &cobra.Command{
		Use:   "put ISBN",
		Short: "Add or replace your review of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireToken(); err != nil {
				return err
			}
			ctx, cancel := opts.ctx(cmd)
			defer cancel()
			res, err := opts.client().PutReview(ctx, args[0], text, rating)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	put.Flags().StringVar(&text, "text", "", "review text")
	put.Flags().IntVar(&rating, "rating", 0, "rating from 1 to 5")

	del := &cobra.Command{
		Use:   "delete ISBN",
		Short: "Delete your review of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireToken(); err != nil {
				return err
			}
			ctx, cancel := opts.ctx(cmd)
			defer cancel()
			res, err := opts.client().DeleteReview(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	reviews.AddCommand(list, put, del)
	return reviews
}

func (o *options) requireToken() error {
	if o.token == "" {
		return errors.New("no token: pass --token or set BOOKSHOP_TOKEN (see bookclient login)")
	}
	return nil
}

// readPassword prompts without echo when stdin is a terminal and reads
// one line otherwise, so passwords can be piped in scripts.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
