// Command watch tails one registry category in the terminal, re-rendering
// its record list and derived view on every poll.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/sync/errgroup"

	"saraban/internal/client"
	"saraban/internal/config"
	"saraban/internal/derive"
	"saraban/internal/model"
	"saraban/internal/registry"
)

func main() {
	cfg := config.Load()

	apiBase := flag.String("api", cfg.Watch.APIBase, "registry API base URL")
	category := flag.String("category", registry.IncomingGeneral, "category id to watch")
	interval := flag.Duration("interval", cfg.Watch.PollInterval, "poll interval")
	flag.Parse()

	if !registry.Known(*category) {
		fmt.Fprintf(os.Stderr, "unknown category %q; known ids:\n", *category)
		for _, m := range registry.Menus {
			for _, c := range m.Categories {
				fmt.Fprintf(os.Stderr, "  %-20s %s\n", c.ID, c.Label)
			}
		}
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poller := client.NewPoller(client.New(*apiBase), *category, *interval)
	poller.OnUpdate = func(recs []model.Record) {
		render(*category, recs)
	}
	poller.OnError = func(err error) {
		log.Printf("poll failed: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return poller.Run(gctx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Fatalf("watcher stopped: %v", err)
	}
}

func render(category string, recs []model.Record) {
	fmt.Printf("\n== %s  (%d records, %s) ==\n", category, len(recs),
		time.Now().Format("15:04:05"))

	renderList(category, recs)

	switch registry.StrategyFor(category) {
	case registry.StrategyBalance:
		renderBalance(derive.StampBalance(recs))
	case registry.StrategyReceipts:
		renderReceipts(derive.GroupReceipts(recs))
	case registry.StrategyByDate:
		renderDateGroups(derive.GroupByReceiveDate(recs))
	case registry.StrategyCalendar:
		now := time.Now()
		renderCalendar(derive.MonthCalendar(recs, now.Year(), now.Month()))
	}
}

func newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleLight)
	return tw
}

func renderList(category string, recs []model.Record) {
	fields := registry.Fields(category)

	tw := newTable()
	header := table.Row{"ID"}
	for _, f := range fields {
		header = append(header, strings.ToUpper(f.Name))
	}
	header = append(header, "FILE")
	tw.AppendHeader(header)

	for _, rec := range recs {
		row := table.Row{rec.ID}
		for _, f := range fields {
			row = append(row, rec.Attributes.Str(f.Name))
		}
		file := ""
		if rec.FilePath != nil {
			file = *rec.FilePath
		}
		row = append(row, file)
		tw.AppendRow(row)
	}
	tw.Render()
}

func renderBalance(ledger derive.Ledger) {
	tw := newTable()
	tw.AppendHeader(table.Row{"ADDED", "USED", "BALANCE", "LOW STOCK"})
	tw.AppendRow(table.Row{ledger.Added, ledger.Used, ledger.Balance, ledger.LowStock})
	tw.Render()
}

func renderReceipts(groups []derive.ReceiptGroup) {
	tw := newTable()
	tw.AppendHeader(table.Row{"RECEIPT", "SEND DATE", "TOTAL COST", "COUNT"})
	for _, g := range groups {
		tw.AppendRow(table.Row{g.Receipt, g.SendDate, g.TotalCost, g.Count})
	}
	tw.Render()
}

func renderDateGroups(groups []derive.DateGroup) {
	tw := newTable()
	tw.AppendHeader(table.Row{"DATE", "RECORDS"})
	for _, g := range groups {
		tw.AppendRow(table.Row{g.Date, len(g.Records)})
	}
	tw.Render()
}

func renderCalendar(cal derive.Calendar) {
	tw := newTable()
	tw.AppendHeader(table.Row{"DAY", "BOOKINGS"})
	for _, day := range cal.Days {
		if len(day.Bookings) == 0 {
			continue
		}
		rooms := make([]string, 0, len(day.Bookings))
		for _, b := range day.Bookings {
			rooms = append(rooms, b.Attributes.Str(model.KeyRoom))
		}
		tw.AppendRow(table.Row{
			fmt.Sprintf("%04d-%02d-%02d", cal.Year, cal.Month, day.Day),
			strings.Join(rooms, ", "),
		})
	}
	tw.Render()
}
