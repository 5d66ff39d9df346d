package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Makepad-fr/orderup/internal/model"
)

// Money formats an amount in dollars.
func Money(v float64) string { return fmt.Sprintf("$%.2f", v) }

// OrderMarkdown lays out an order's details as markdown.
func OrderMarkdown(o model.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Order %s\n\n", o.OrderNumber)
	fmt.Fprintf(&b, "**Status:** %s  \n", StatusLabel(string(o.Status)))
	fmt.Fprintf(&b, "**Customer:** %s  \n", o.CustomerName)
	if o.CustomerPhone != "" {
		fmt.Fprintf(&b, "**Phone:** %s  \n", o.CustomerPhone)
	}
	fmt.Fprintf(&b, "**Source:** %s  \n", o.Source)
	if o.ExternalID != "" {
		fmt.Fprintf(&b, "**External ID:** %s  \n", o.ExternalID)
	}
	if o.Type != "" {
		fmt.Fprintf(&b, "**Type:** %s  \n", o.Type)
	}
	if o.PaymentStatus != "" {
		fmt.Fprintf(&b, "**Payment:** %s  \n", o.PaymentStatus)
	}
	fmt.Fprintf(&b, "**Created:** %s  \n", o.CreatedAt)
	if o.PickupTime != "" {
		fmt.Fprintf(&b, "**Pickup:** %s  \n", o.PickupTime)
	}

	b.WriteString("\n## Items\n\n| Item | SKU | Qty | Price |\n|---|---|---:|---:|\n")
	for _, it := range o.Items {
		price := ""
		if it.UnitPrice > 0 {
			price = Money(it.UnitPrice)
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", it.Name, it.SKU, it.Quantity, price)
	}

	if f := o.Financials; f != nil {
		b.WriteString("\n## Financial Summary\n\n")
		fmt.Fprintf(&b, "- Subtotal: %s\n- Tax: %s\n- Fees: %s\n", Money(f.Subtotal), Money(f.Tax), Money(f.Fees))
		if f.Customization != 0 {
			fmt.Fprintf(&b, "- Customization: %s\n", Money(f.Customization))
		}
		fmt.Fprintf(&b, "- **Total: %s**\n", Money(f.Total))
	} else {
		fmt.Fprintf(&b, "\n**Total:** %s\n", Money(o.TotalAmount))
	}

	if p := o.Processing; p != nil {
		b.WriteString("\n## Processing Information\n\n")
		fmt.Fprintf(&b, "- Store: %s\n- Employee: %s\n- Register: %s\n", p.Store, p.Employee, p.Register)
	}
	return b.String()
}

// RenderMarkdown renders md for the terminal at width columns, in colour
// only when C would colour too.
func RenderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle(markdownStyle()), glamour.WithWordWrap(width))
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func markdownStyle() string {
	if !Colorful() {
		return "notty"
	}
	return "dark"
}
