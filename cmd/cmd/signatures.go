// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/ostafen/sigscan/internal/search"
	"github.com/ostafen/sigscan/internal/signature"
	"github.com/spf13/cobra"
)

func DefineSignaturesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signatures <signatures>",
		Short: "List the signatures of a database in match order",
		Long: `The 'signatures' command loads a signature database and displays its entries in the order
they are tested: highest priority first, ties in file order.
Each entry includes its priority, name, pattern length, pattern bytes in hex and rolling hash.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunSignatures,
	}
	return cmd
}

func RunSignatures(cmd *cobra.Command, args []string) error {
	db, err := signature.Load(args[0], search.DefaultConfig)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), renderSignatures(db))
	return err
}

func renderSignatures(db *signature.Database) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "PRIORITY", "NAME", "LENGTH", "PATTERN", "HASH"})

	i := 0
	for sig := range db.All() {
		i++
		tw.AppendRow(table.Row{
			i,
			sig.Priority(),
			sig.Name(),
			sig.Len(),
			hex.EncodeToString(sig.Bytes()),
			strconv.FormatUint(sig.Hash(), 10),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	return tw.Render()
}
