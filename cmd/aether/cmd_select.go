package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"aether/cmd/aether/project"
	"aether/cmd/aether/widget"
)

func newSelectCmd(a *app) *cobra.Command {
	var none bool
	cmd := &cobra.Command{
		Use:   "select [id...]",
		Short: "Set the selection; without ids, pick nodes interactively",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, err := a.state()
			if err != nil {
				return err
			}
			var ids []widget.ID
			if len(args) == 0 && !none {
				if ids, err = pickNodes(cur); err != nil {
					if errors.Is(err, fuzzyfinder.ErrAbort) {
						return nil
					}
					return err
				}
			}
			for _, arg := range args {
				id, err := resolveID(cur, arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			return a.mutate(func(s *project.State) error {
				s.Select(ids...)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&none, "none", false, "clear the selection")
	return cmd
}

// pickNodes opens a fuzzy finder over the hierarchy with a property preview.
func pickNodes(s *project.State) ([]widget.ID, error) {
	rows := flatten(s)
	idx, err := fuzzyfinder.FindMulti(
		rows,
		func(i int) string {
			return strings.Repeat("  ", rows[i].depth) + rowLabel(rows[i].node, false)
		},
		fuzzyfinder.WithPromptString("Select node: "),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i < 0 {
				return ""
			}
			var buf bytes.Buffer
			printProps(&buf, s, rows[i].node)
			return buf.String()
		}),
	)
	if err != nil {
		return nil, err
	}
	ids := make([]widget.ID, len(idx))
	for i, j := range idx {
		ids[i] = rows[j].node.ID()
	}
	return ids, nil
}

func newCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "copy [id]",
		Short: "Print a subtree as JSON for paste",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.state()
			if err != nil {
				return err
			}
			id, err := resolveID(s, optionalArg(args, 0))
			if err != nil {
				return err
			}
			n, _ := s.Find(id)
			data, err := encodeClip(n)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newPasteCmd(a *app) *cobra.Command {
	var (
		parentArg string
		index     int
	)
	cmd := &cobra.Command{
		Use:     "paste",
		Short:   "Insert a subtree read from stdin with fresh ids",
		Example: "  " + appName + " copy 1a2b | " + appName + " paste --parent 3c4d",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := decodeClip(cmd.InOrStdin())
			if err != nil {
				return err
			}
			var pasted widget.ID
			err = a.mutate(func(s *project.State) error {
				var parent widget.ID
				if parentArg != "" {
					if parent, err = resolveID(s, parentArg); err != nil {
						return err
					}
				}
				at := widget.End
				if index >= 0 {
					at = index
				}
				id, ok := s.Paste(n, parent, at)
				if !ok {
					return fmt.Errorf("cannot paste %s here", n.Kind())
				}
				pasted = id
				s.Select(id)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pasted)
			return nil
		},
	}
	cmd.Flags().StringVar(&parentArg, "parent", "", "container id (default: root)")
	cmd.Flags().IntVar(&index, "index", -1, "position among the parent's children (default: last)")
	return cmd
}
