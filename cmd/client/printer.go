package main

import (
	"chat-rooms/domain"
	"chat-rooms/domain/event"
	"fmt"
	"io"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

// Printer renders server events for a terminal.
type Printer struct {
	out     io.Writer
	colours bool
}

func NewPrinter(out io.Writer, colours bool) *Printer {
	return &Printer{out: out, colours: colours}
}

func (p *Printer) Print(e event.Event) {
	switch v := e.(type) {
	case event.MessagePosted:
		sender := v.Message.Username
		if sender == domain.AdminName {
			sender = p.paint(color.New(color.FgYellow, color.OpBold), sender)
		} else {
			sender = p.paint(color.New(color.FgCyan), sender)
		}
		fmt.Fprintf(p.out, "[%s] %s: %s\n", v.Message.CreatedAt.Local().Format(time.TimeOnly), sender, v.Message.Text)
	case event.LocationShared:
		fmt.Fprintf(p.out, "[%s] %s shared a location: %s\n",
			v.Location.CreatedAt.Local().Format(time.TimeOnly),
			p.paint(color.New(color.FgCyan), v.Location.Username),
			p.paint(color.New(color.FgBlue, color.OpUnderscore), v.Location.URL))
	case event.RoomDataChanged:
		p.printRoster(v.Data)
	case event.Ack:
		if v.Error != "" {
			fmt.Fprintln(p.out, p.paint(color.New(color.FgRed), "✗ "+v.Error))
		}
	}
}

func (p *Printer) Error(err error) {
	fmt.Fprintln(p.out, p.paint(color.New(color.FgRed), err.Error()))
}

func (p *Printer) printRoster(data domain.RoomData) {
	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"#", "Room " + data.Room})
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for i, user := range data.Users {
		table.Append([]string{fmt.Sprint(i + 1), user})
	}
	table.Render()
}

func (p *Printer) paint(style color.Style, s string) string {
	if !p.colours {
		return s
	}
	return style.Render(s)
}
