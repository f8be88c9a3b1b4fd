package console

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/example/shopadmin/pkg/models"
	"github.com/spf13/cobra"
)

func entityCommands(a *App) []*cobra.Command {
	return []*cobra.Command{
		users.command(a),
		products.command(a),
		categories.command(a),
		orders.command(a),
		payments.command(a),
		promotions.command(a),
		reviews.command(a),
	}
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

var users = &entity[models.User, models.UserForm]{
	schema:  models.Users,
	seed:    models.SeedUsers,
	columns: []string{"ID", "NAME", "EMAIL", "PHONE", "ROLES", "PROVIDER"},
	row: func(u models.User, _ []models.User) []string {
		roles := make([]string, len(u.Roles))
		for i, r := range u.Roles {
			roles[i] = string(r)
		}
		return []string{id(u.ID), u.Name, u.Email, u.Phone, strings.Join(roles, ","), string(u.Provider)}
	},
	label: func(u models.User) string { return u.Email },
}

var products = &entity[models.Product, models.ProductForm]{
	schema:  models.Products,
	seed:    models.SeedProducts,
	columns: []string{"ID", "NAME", "CATEGORY", "PRICE", "STOCK", "SIZES", "COLOURS"},
	row: func(p models.Product, _ []models.Product) []string {
		return []string{
			id(p.ID), p.Name, p.Category, p.Price.StringFixed(2) + " TND", strconv.FormatInt(p.Stock, 10),
			strings.Join(p.Sizes, ","), strings.Join(p.Colors, ","),
		}
	},
	label: func(p models.Product) string { return p.Name },
}

var categories = &entity[models.Category, models.CategoryForm]{
	schema:  models.Categories,
	seed:    models.SeedCategories,
	columns: []string{"ID", "NAME", "DESCRIPTION", "PARENT"},
	row: func(c models.Category, all []models.Category) []string {
		parent := "-"
		if c.ParentID != nil {
			if parent = models.CategoryName(all, c.ParentID); parent == "" {
				parent = "#" + id(*c.ParentID)
			}
		}
		return []string{id(c.ID), c.Name, c.Description, parent}
	},
	label: func(c models.Category) string { return c.Name },
}

var orders = &entity[models.Order, models.OrderForm]{
	schema:  models.Orders,
	seed:    models.SeedOrders,
	columns: []string{"ID", "CUSTOMER", "DATE", "ITEMS", "TOTAL", "STATUS", "PAYMENT"},
	row: func(o models.Order, _ []models.Order) []string {
		return []string{
			id(o.ID), o.CustomerName, o.OrderedOn, strconv.Itoa(len(o.Items)),
			o.Total.StringFixed(2) + " TND", string(o.Status), string(o.PaymentMethod),
		}
	},
	label:  func(o models.Order) string { return o.CustomerName },
	detail: orderDetail,
}

func orderDetail(w io.Writer, o models.Order) error {
	fmt.Fprintf(w, "Order #%d, %s\n", o.ID, o.OrderedOn)
	fmt.Fprintf(w, "Customer: %s (#%d)\n", o.CustomerName, o.CustomerID)
	fmt.Fprintf(w, "Ship to:  %s\n", o.ShippingAddress)
	fmt.Fprintf(w, "Payment:  %s\n", o.PaymentMethod)
	fmt.Fprintf(w, "Status:   %s\n\n", o.Status)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PRODUCT\tQTY\tPRICE\tSUBTOTAL\t")
	for _, li := range o.Items {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t\n", li.Name, li.Quantity, li.Price.StringFixed(2), li.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(tw, "\t\tTotal\t%s TND\t\n", o.Total.StringFixed(2))
	return tw.Flush()
}

var payments = &entity[models.Payment, models.PaymentForm]{
	schema:  models.Payments,
	seed:    models.SeedPayments,
	columns: []string{"ID", "ORDER", "AMOUNT", "METHOD", "STATUS", "DATE"},
	row: func(p models.Payment, _ []models.Payment) []string {
		return []string{id(p.ID), "#" + id(p.OrderID), p.Amount.StringFixed(2) + " TND", string(p.Method), string(p.Status), p.PaidOn}
	},
	label: func(p models.Payment) string { return "order #" + id(p.OrderID) },
	extra: func(a *App, e *entity[models.Payment, models.PaymentForm]) []*cobra.Command {
		return []*cobra.Command{{
			Use:   "summary",
			Short: "Totals paid and failed, and the success rate",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s := openSession(a, e, false)
				view, err := s.load("")
				s.close()
				if err != nil {
					return err
				}
				sum := models.SummarizePayments(view.Records)
				fmt.Fprintf(a.out, "Total paid:    %s TND (%d payments)\n", sum.TotalPaid.StringFixed(2), sum.Paid)
				fmt.Fprintf(a.out, "Total failed:  %s TND (%d payments)\n", sum.TotalFailed.StringFixed(2), sum.Failed)
				fmt.Fprintf(a.out, "Success rate:  %.1f%% of %d transactions\n", sum.SuccessRate, sum.Count)
				return nil
			},
		}}
	},
}

var promotions = &entity[models.Promotion, models.PromotionForm]{
	schema:  models.Promotions,
	seed:    models.SeedPromotions,
	columns: []string{"ID", "CODE", "DISCOUNT", "TARGET", "PERIOD", "USES", "ACTIVE"},
	row: func(p models.Promotion, _ []models.Promotion) []string {
		discount := p.Value.String() + "%"
		if p.Type == models.PromotionAmount {
			discount = p.Value.StringFixed(2) + " TND"
		}
		target := p.CategoryName
		if p.ProductName != "" {
			target = p.ProductName
		}
		active := "no"
		if p.Active(models.Now()) {
			active = "yes"
		}
		return []string{
			id(p.ID), p.Code, discount, target, p.StartsOn + " → " + p.EndsOn,
			fmt.Sprintf("%d/%d", p.Uses, p.MaxUses), active,
		}
	},
	label:   func(p models.Promotion) string { return p.Code },
	resolve: promotionTargets,
	narrow: func(cmd *cobra.Command) func([]models.Promotion) []models.Promotion {
		active := cmd.Flags().Bool("active", false, "only promotions running today")
		return func(list []models.Promotion) []models.Promotion {
			if !*active {
				return list
			}
			return models.ActivePromotions(list, models.Now())
		}
	},
}

var reviews = &entity[models.Review, models.ReviewForm]{
	schema:  models.Reviews,
	seed:    models.SeedReviews,
	columns: []string{"ID", "PRODUCT", "CUSTOMER", "RATING", "DATE", "COMMENT"},
	row: func(r models.Review, _ []models.Review) []string {
		rating := min(max(r.Rating, 0), 5)
		stars := strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
		return []string{id(r.ID), r.ProductName, r.CustomerName, stars, r.Date, r.Comment}
	},
	label: func(r models.Review) string { return r.ProductName + " by " + r.CustomerName },
}

// promotionTargets names the product or category a promotion applies to
// when the record only carries the id. A promotion with neither applies to
// every category.
func promotionTargets(a *App, list []models.Promotion) ([]models.Promotion, error) {
	var needProducts, needCategories bool
	for _, p := range list {
		needProducts = needProducts || (p.ProductID != nil && p.ProductName == "")
		needCategories = needCategories || (p.CategoryID != nil && p.CategoryName == "")
	}

	var (
		prods []models.Product
		cats  []models.Category
		err   error
	)
	if needProducts {
		if prods, err = loadAll(a, products); err != nil {
			return nil, err
		}
	}
	if needCategories {
		if cats, err = loadAll(a, categories); err != nil {
			return nil, err
		}
	}

	out := slices.Clone(list)
	for i := range out {
		p := &out[i]
		switch {
		case p.ProductID != nil:
			if p.ProductName == "" {
				p.ProductName = models.LookupName(models.Products, prods, *p.ProductID, func(pr models.Product) string { return pr.Name })
			}
		case p.CategoryName == "":
			p.CategoryName = models.CategoryName(cats, p.CategoryID)
		}
	}
	return out, nil
}

func loadAll[T any, F any](a *App, e *entity[T, F]) ([]T, error) {
	s := openSession(a, e, false)
	view, err := s.load("")
	s.close()
	if err != nil {
		return nil, err
	}
	return view.Records, nil
}
