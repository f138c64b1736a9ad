package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printCustomersTable(w io.Writer, customers []magento.Customer) error {
	tw := newTabWriter(w)
	tw.writef("ID\tEMAIL\tNAME\tWEBSITE\tADDRESSES\n")
	for i := range customers {
		c := &customers[i]
		tw.writef("%d\t%s\t%s %s\t%d\t%d\n",
			c.ID,
			c.Email,
			c.Firstname,
			c.Lastname,
			c.WebsiteID,
			len(c.Addresses),
		)
	}
	return tw.finish()
}

func printCustomerDetail(w io.Writer, c *magento.Customer) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%d\n", c.ID)
	tw.writef("Email:\t%s\n", c.Email)
	tw.writef("Name:\t%s %s\n", c.Firstname, c.Lastname)
	tw.writef("Group:\t%d\n", c.GroupID)
	tw.writef("Website:\t%d\n", c.WebsiteID)
	tw.writef("Store:\t%d\n", c.StoreID)
	tw.writef("Created:\t%s\n", c.CreatedAt)
	for i := range c.Addresses {
		a := &c.Addresses[i]
		var roles []string
		if a.DefaultShipping {
			roles = append(roles, "shipping")
		}
		if a.DefaultBilling {
			roles = append(roles, "billing")
		}
		label := "Address:"
		if len(roles) > 0 {
			label = fmt.Sprintf("Address (%s):", strings.Join(roles, ", "))
		}
		tw.writef("%s\t%s, %s %s, %s\n", label, strings.Join(a.Street, " "), a.Postcode, a.City, a.CountryID)
	}
	return tw.finish()
}

func printOrdersTable(w io.Writer, orders []magento.Order) error {
	tw := newTabWriter(w)
	tw.writef("ID\tINCREMENT\tSTATE\tSTATUS\tCUSTOMER\tTOTAL\tCREATED\n")
	for i := range orders {
		o := &orders[i]
		tw.writef("%d\t%s\t%s\t%s\t%s\t%.2f %s\t%s\n",
			o.EntityID,
			o.IncrementID,
			o.State,
			o.Status,
			truncate(o.CustomerEmail, 32),
			o.GrandTotal,
			o.OrderCurrencyCode,
			o.CreatedAt,
		)
	}
	return tw.finish()
}

func printOrderDetail(w io.Writer, o *magento.Order) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%d\n", o.EntityID)
	tw.writef("Increment ID:\t%s\n", o.IncrementID)
	tw.writef("Quote ID:\t%d\n", o.QuoteID)
	tw.writef("State:\t%s\n", o.State)
	tw.writef("Status:\t%s\n", o.Status)
	tw.writef("Customer:\t%s %s <%s>\n", o.CustomerFirstname, o.CustomerLastname, o.CustomerEmail)
	tw.writef("Subtotal:\t%.2f %s\n", o.Subtotal, o.OrderCurrencyCode)
	tw.writef("Grand Total:\t%.2f %s\n", o.GrandTotal, o.OrderCurrencyCode)
	tw.writef("Virtual:\t%v\n", o.IsVirtual == 1)
	tw.writef("Created:\t%s\n", o.CreatedAt)
	for i := range o.Items {
		it := &o.Items[i]
		tw.writef("Item:\t%s x%.0f @ %.2f\n", it.SKU, it.QtyOrdered, it.Price)
	}
	return tw.finish()
}

func printProductsTable(w io.Writer, products []magento.Product) error {
	tw := newTabWriter(w)
	tw.writef("ID\tSKU\tNAME\tTYPE\tPRICE\tIMAGES\n")
	for i := range products {
		p := &products[i]
		tw.writef("%d\t%s\t%s\t%s\t%.2f\t%d\n",
			p.ID,
			p.SKU,
			truncate(p.Name, 40),
			p.TypeID,
			p.Price,
			len(p.MediaGalleryEntries),
		)
	}
	return tw.finish()
}

func printProductDetail(w io.Writer, p *magento.Product) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%d\n", p.ID)
	tw.writef("SKU:\t%s\n", p.SKU)
	tw.writef("Name:\t%s\n", p.Name)
	tw.writef("Type:\t%s\n", p.TypeID)
	tw.writef("Price:\t%.2f\n", p.Price)
	tw.writef("Status:\t%d\n", p.Status)
	tw.writef("Visibility:\t%d\n", p.Visibility)
	for i := range p.MediaGalleryEntries {
		e := &p.MediaGalleryEntries[i]
		tw.writef("Image %d:\t%s [%s]\n", e.ID, e.File, strings.Join(e.Types, ","))
	}
	return tw.finish()
}

func printShippingMethodsTable(w io.Writer, methods []magento.ShippingMethod) error {
	tw := newTabWriter(w)
	tw.writef("CARRIER\tMETHOD\tTITLE\tAMOUNT\tAVAILABLE\n")
	for i := range methods {
		m := &methods[i]
		tw.writef("%s\t%s\t%s\t%.2f\t%v\n",
			m.CarrierCode,
			m.MethodCode,
			m.CarrierTitle+" - "+m.MethodTitle,
			m.Amount,
			m.Available,
		)
	}
	return tw.finish()
}

func printPaymentMethodsTable(w io.Writer, methods []magento.PaymentMethod) error {
	tw := newTabWriter(w)
	tw.writef("CODE\tTITLE\n")
	for i := range methods {
		tw.writef("%s\t%s\n", methods[i].Code, methods[i].Title)
	}
	return tw.finish()
}

func printWebsitesTable(w io.Writer, websites []magento.Website) error {
	tw := newTabWriter(w)
	tw.writef("ID\tCODE\tNAME\tDEFAULT GROUP\n")
	for i := range websites {
		tw.writef("%d\t%s\t%s\t%d\n",
			websites[i].ID,
			websites[i].Code,
			websites[i].Name,
			websites[i].DefaultGroupID,
		)
	}
	return tw.finish()
}

func printStoreViewsTable(w io.Writer, views []magento.StoreView) error {
	tw := newTabWriter(w)
	tw.writef("ID\tCODE\tNAME\tWEBSITE\tGROUP\tACTIVE\n")
	for i := range views {
		tw.writef("%d\t%s\t%s\t%d\t%d\t%v\n",
			views[i].ID,
			views[i].Code,
			views[i].Name,
			views[i].WebsiteID,
			views[i].StoreGroupID,
			views[i].IsActive == 1,
		)
	}
	return tw.finish()
}

func printStoreGroupsTable(w io.Writer, groups []magento.StoreGroup) error {
	tw := newTabWriter(w)
	tw.writef("ID\tCODE\tNAME\tWEBSITE\tROOT CATEGORY\tDEFAULT STORE\n")
	for i := range groups {
		tw.writef("%d\t%s\t%s\t%d\t%d\t%d\n",
			groups[i].ID,
			groups[i].Code,
			groups[i].Name,
			groups[i].WebsiteID,
			groups[i].RootCategoryID,
			groups[i].DefaultStoreID,
		)
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
