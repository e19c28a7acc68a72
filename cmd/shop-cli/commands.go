package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	domain "github.com/MUHMMADSALEH/E-Commeerce-app/internal/entity"
	"github.com/spf13/cobra"
)

func (c *cli) registerCmd() *cobra.Command {
	var name, email, password, adminCode string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := c.ctx()
			defer cancel()
			res, err := c.api.Register(ctx, name, email, password, adminCode)
			if err != nil {
				return err
			}
			if err := c.sess.SignIn(res.Token, res.Account); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", res.Account.Email, res.Account.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&adminCode, "admin-code", "", "admin registration code")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := c.ctx()
			defer cancel()
			res, err := c.api.Login(ctx, email, password)
			if err != nil {
				return err
			}
			if err := c.sess.SignIn(res.Token, res.Account); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", res.Account.Email, res.Account.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.sess.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out successfully")
			return nil
		},
	}
}

func (c *cli) meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requireLogin(); err != nil {
				return err
			}
			ctx, cancel := c.ctx()
			defer cancel()
			acc, err := c.api.Me(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> role=%s id=%s\n", acc.Name, acc.Email, acc.Role, acc.ID)
			return nil
		},
	}
}

func (c *cli) productsCmd() *cobra.Command {
	var category string
	var page, limit int
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := c.ctx()
			defer cancel()
			res, err := c.api.Products(ctx, category, page, limit)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
			for _, p := range res.Products {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Stock)
			}
			_ = w.Flush()
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d products)\n", res.CurrentPage, res.TotalPages, res.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 10, "page size")
	return cmd
}

func (c *cli) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List product categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := c.ctx()
			defer cancel()
			cats, err := c.api.Categories(ctx)
			if err != nil {
				return err
			}
			for _, cat := range cats {
				fmt.Fprintln(cmd.OutOrStdout(), cat)
			}
			return nil
		},
	}
}

func (c *cli) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add PRODUCT_ID",
		Short: "Add one unit of a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx()
			defer cancel()
			p, err := c.api.Product(ctx, args[0])
			if err != nil {
				return err
			}
			if err := c.sess.Add(p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s, cart has %d item(s)\n", p.Name, c.sess.Count())
			return nil
		},
	}
}

func (c *cli) cartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tQTY\tPRICE")
			for _, it := range c.sess.Cart {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", it.Product.ID, it.Product.Name, it.Quantity, it.Product.Price.StringFixed(2))
			}
			_ = w.Flush()
			fmt.Fprintf(cmd.OutOrStdout(), "total %s\n", c.sess.Total().StringFixed(2))
			return nil
		},
	}
}

func (c *cli) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove PRODUCT_ID",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.sess.Remove(args[0])
		},
	}
}

func (c *cli) qtyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "qty PRODUCT_ID QUANTITY",
		Short: "Set the quantity of a cart line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity: %w", err)
			}
			return c.sess.SetQuantity(args[0], q)
		},
	}
}

func (c *cli) checkoutCmd() *cobra.Command {
	var addr domain.ShippingAddress
	var payment string
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requireLogin(); err != nil {
				return err
			}
			draft, err := c.sess.Draft(addr, domain.PaymentMethod(payment))
			if err != nil {
				return err
			}
			ctx, cancel := c.ctx()
			defer cancel()
			order, err := c.api.PlaceOrder(ctx, draft, "")
			if err != nil {
				return err
			}
			if err := c.sess.ClearCart(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "order %s placed: %s, total %s\n", order.ID, order.Status, order.TotalPrice.StringFixed(2))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&addr.FullName, "name", "", "recipient full name")
	f.StringVar(&addr.Address, "address", "", "street address")
	f.StringVar(&addr.City, "city", "", "city")
	f.StringVar(&addr.State, "state", "", "state")
	f.StringVar(&addr.PostalCode, "postal-code", "", "postal code")
	f.StringVar(&addr.Phone, "phone", "", "phone")
	f.StringVar(&addr.Email, "email", "", "contact email (defaults to the account email)")
	f.StringVar(&payment, "payment", string(domain.PaymentCreditCard), `"Credit Card" or "PayPal"`)
	return cmd
}

func (c *cli) ordersCmd() *cobra.Command {
	var open bool
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List my orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requireLogin(); err != nil {
				return err
			}
			ctx, cancel := c.ctx()
			defer cancel()
			orders, err := c.api.MyOrders(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPLACED\tSTATUS\tITEMS\tTOTAL")
			for _, o := range orders {
				if open && o.Status.Terminal() {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", o.ID, o.CreatedAt.Format("2006-01-02 15:04"), o.Status, len(o.Items), o.TotalPrice.StringFixed(2))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "hide delivered and cancelled orders")
	return cmd
}
