package checkout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tmoreau/boutique-backend/internal/cart"
)

// Composer renders cart lines into the French order messages the shop
// operator receives. It is pure: same items, same text.
type Composer struct {
	ShopName string
}

// money renders a currency amount with exactly two decimals and a fixed
// decimal point, e.g. 18 → "18.00€".
func money(v float64) string {
	return fmt.Sprintf("%.2f€", v)
}

// unitPrice renders the displayed unit price without forced decimals,
// matching how the storefront shows catalog prices (10 → "10€").
func unitPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "€"
}

func subtotal(items []cart.Item) float64 {
	var total float64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}

// ServiceMessage builds the order text for a single service's lines:
// a header naming the service, one detailed block per line, then the
// service subtotal and the closing courtesy lines.
func (c Composer) ServiceMessage(service cart.Service, items []cart.Item) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s COMMANDE %s - %s\n\n",
		service.Icon(), c.ShopName, strings.ToUpper(service.Label()))

	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.ProductName)
		fmt.Fprintf(&b, "• Quantité: %dx %s\n", item.Quantity, item.Weight)
		fmt.Fprintf(&b, "• Prix unitaire: %s\n", unitPrice(item.OriginalPrice))
		fmt.Fprintf(&b, "• Total: %s\n", money(item.LineTotal()))
		if item.Discount > 0 {
			fmt.Fprintf(&b, "• Remise: -%d%%\n", item.Discount)
		}
		if item.Schedule != "" {
			fmt.Fprintf(&b, "• Horaire demandé: %s\n", item.Schedule)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "💰 TOTAL %s: %s\n\n", strings.ToUpper(service.Label()), money(subtotal(items)))
	fmt.Fprintf(&b, "📍 Service: %s %s\n\n", service.Icon(), service.Label())
	fmt.Fprintf(&b, "Commande depuis le site %s\n", c.ShopName)
	b.WriteString("Merci de confirmer votre commande !")

	return b.String()
}

// CompleteMessage builds one text covering every service of the cart, in
// the order services first appear among the lines, closed by a grand total.
func (c Composer) CompleteMessage(items []cart.Item) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🛒 COMMANDE COMPLÈTE %s\n\n", c.ShopName)

	var grandTotal float64
	for _, service := range servicesInOrder(items) {
		serviceItems := filterByService(items, service)
		serviceTotal := subtotal(serviceItems)
		grandTotal += serviceTotal

		fmt.Fprintf(&b, "%s %s\n", service.Icon(), strings.ToUpper(service.ShortLabel()))
		for i, item := range serviceItems {
			fmt.Fprintf(&b, "%d. %s\n", i+1, item.ProductName)
			fmt.Fprintf(&b, "   • %dx %s - %s\n", item.Quantity, item.Weight, money(item.LineTotal()))
			if item.Schedule != "" {
				fmt.Fprintf(&b, "   • Horaire: %s\n", item.Schedule)
			}
		}
		fmt.Fprintf(&b, "   💰 Sous-total %s: %s\n\n", service.ShortLabel(), money(serviceTotal))
	}

	fmt.Fprintf(&b, "💰 TOTAL GÉNÉRAL: %s\n\n", money(grandTotal))
	fmt.Fprintf(&b, "Commande depuis le site %s\n", c.ShopName)
	b.WriteString("Merci de confirmer votre commande !")

	return b.String()
}

// Compose renders the right variant for the given lines: the detailed
// single-service text when every line shares one service, the combined
// text otherwise.
func (c Composer) Compose(items []cart.Item) string {
	services := servicesInOrder(items)
	if len(services) == 1 {
		return c.ServiceMessage(services[0], items)
	}
	return c.CompleteMessage(items)
}

func servicesInOrder(items []cart.Item) []cart.Service {
	var services []cart.Service
	seen := make(map[cart.Service]bool)
	for _, item := range items {
		if item.Service.Valid() && !seen[item.Service] {
			seen[item.Service] = true
			services = append(services, item.Service)
		}
	}
	return services
}

func filterByService(items []cart.Item, service cart.Service) []cart.Item {
	var filtered []cart.Item
	for _, item := range items {
		if item.Service == service {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
