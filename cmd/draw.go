package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"SecretSanta/internal/santa"
)

var drawOpts struct {
	names    []string
	couples  []string
	seed     int64
	maxRetry int
}

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Draw once and print who gives to whom",
	Example: `  secretsanta draw -n Florent -n Jessica -n Coline -n Emilien -n Ambroise -n Bastien \
    --couple Florent:Jessica --couple Coline:Emilien`,
	RunE: runDraw,
}

func init() {
	f := drawCmd.Flags()
	f.StringArrayVarP(&drawOpts.names, "name", "n", nil, "participant name (repeatable)")
	f.StringArrayVar(&drawOpts.couples, "couple", nil, "couple that must not draw each other, as A:B (repeatable)")
	f.Int64Var(&drawOpts.seed, "seed", 0, "random seed, 0 picks one from the clock")
	f.IntVar(&drawOpts.maxRetry, "max-retry", santa.MaxRetry, "reshuffles before giving up")
}

func runDraw(cmd *cobra.Command, args []string) error {
	participants := santa.NewParticipants(lo.Filter(
		lo.Map(drawOpts.names, func(n string, _ int) string { return strings.TrimSpace(n) }),
		func(n string, _ int) bool { return n != "" },
	)...)

	couples, err := parseCouples(drawOpts.couples, participants)
	if err != nil {
		return err
	}

	seed := drawOpts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m := santa.NewMatcher(seed, santa.WithMaxRetry(drawOpts.maxRetry))

	res, err := m.Match(participants, couples)
	if err != nil {
		return err
	}
	renderAssignment(cmd.OutOrStdout(), res)
	return nil
}

var errBadCouple = errors.New("invalid couple")

// parseCouples A:B 列表 -> Couples，规则与 API 一致：两人不同、都在名单中、每人最多一对
func parseCouples(raw []string, participants santa.Participants) (santa.Couples, error) {
	out := santa.Couples{}
	seen := map[string]bool{}
	for _, s := range raw {
		a, b, ok := strings.Cut(s, ":")
		a, b = strings.TrimSpace(a), strings.TrimSpace(b)
		if !ok || a == "" || b == "" {
			return nil, fmt.Errorf("%w %q: want A:B", errBadCouple, s)
		}
		if a == b {
			return nil, fmt.Errorf("%w %q: same person twice", errBadCouple, s)
		}
		for _, n := range []string{a, b} {
			if !participants.Has(n) {
				return nil, fmt.Errorf("%w %q: %s is not a participant", errBadCouple, s, n)
			}
			if seen[n] {
				return nil, fmt.Errorf("%w %q: %s is already in a couple", errBadCouple, s, n)
			}
			seen[n] = true
		}
		out[a] = b
	}
	return out, nil
}

func renderAssignment(w io.Writer, a santa.Assignment) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Giver", "", "Receiver"})
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("\t")
	for _, p := range a.Pairs() {
		table.Append([]string{p.Giver, "🎁 →", p.Receiver})
	}
	table.Render()
}
