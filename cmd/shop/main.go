package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/rl1809/minimart/internal/adapter/storage"
	"github.com/rl1809/minimart/internal/core/domain"
	"github.com/rl1809/minimart/internal/core/service"
	"github.com/rl1809/minimart/internal/port"
)

func main() {
	file := flag.String("file", "products.csv", "catalog file")
	user := flag.String("user", "Guest", "purchaser name")
	flag.Parse()

	ctx := context.Background()
	store := storage.NewCSVStore(*file)

	catalog := service.NewCatalog()
	rows, err := store.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	for _, perr := range catalog.Load(rows) {
		log.Printf("skipping catalog row: %v", perr)
	}

	ledger := service.NewLedger()
	cart := service.NewCart(catalog)
	checkout := service.NewCheckout(catalog, ledger)

	in := bufio.NewReader(os.Stdin)
	printHeader("Welcome to minimart")

	for {
		fmt.Println("1. Add product")
		fmt.Println("2. Add to cart")
		fmt.Println("3. Checkout")
		fmt.Println("4. List orders")
		fmt.Println("0. Exit")
		fmt.Println(strings.Repeat("-", 20))

		switch readInt(in, "Enter your choice: ", 0, 4) {
		case 1:
			addProduct(in, catalog)
			persist(ctx, store, catalog)
		case 2:
			addToCart(in, cart, catalog)
		case 3:
			doCheckout(checkout, cart, *user)
			persist(ctx, store, catalog)
		case 4:
			listOrders(ledger)
		case 0:
			persist(ctx, store, catalog)
			fmt.Println("Exiting.")
			return
		}
	}
}

func addProduct(in *bufio.Reader, catalog *service.Catalog) {
	printHeader("Add Product")

	id := readNonNegInt(in, "Enter ID: ")
	name := readLine(in, "Enter Name: ")
	category := readLine(in, "Enter Category: ")
	price := readFloat(in, "Enter Price: ")
	stock := readNonNegInt(in, "Enter Stock: ")

	catalog.Upsert(domain.Product{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    price,
		Stock:    stock,
	})
	fmt.Println("Product added.")
}

func addToCart(in *bufio.Reader, cart *service.Cart, catalog *service.Catalog) {
	printHeader("Add to Cart")

	name := readLine(in, "Enter product name: ")
	if _, ok := catalog.FindByName(name); !ok {
		fmt.Println("Product not found.")
		return
	}
	quantity := readPositiveInt(in, "Enter quantity: ")

	err := cart.Add(name, quantity)
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		fmt.Printf("Sorry, only %d units of %s are available.\n", stockErr.Available, name)
	case err != nil:
		fmt.Printf("Could not add to cart: %v\n", err)
	default:
		fmt.Printf("Added %d of %s to cart.\n", quantity, name)
	}
}

func doCheckout(checkout *service.Checkout, cart *service.Cart, purchaser string) {
	printHeader("Checkout")

	receipt, err := checkout.Commit(cart, purchaser)
	if err != nil {
		fmt.Println("Your cart is empty. Add products before checking out.")
		return
	}

	for _, f := range receipt.Failures {
		var stockErr *domain.InsufficientStockError
		if errors.As(f.Err, &stockErr) {
			fmt.Printf("Could not fulfill %d of %s: only %d available.\n",
				f.Quantity, f.Name, stockErr.Available)
		} else {
			fmt.Printf("Could not fulfill %d of %s: %v\n", f.Quantity, f.Name, f.Err)
		}
	}
	if receipt.Order != nil {
		fmt.Printf("Order #%d placed: %s\n", receipt.Order.ID, strings.Join(receipt.Order.Items, ", "))
	}
	fmt.Printf("Checkout complete. Total: $%.2f\n", receipt.Total)
}

func listOrders(ledger *service.Ledger) {
	printHeader("Orders")

	orders := ledger.All()
	if len(orders) == 0 {
		fmt.Println("No orders yet.")
		return
	}
	for _, o := range orders {
		fmt.Printf("#%d %s: %s ($%.2f)\n", o.ID, o.Purchaser, strings.Join(o.Items, ", "), o.Total)
	}
}

func persist(ctx context.Context, store port.CatalogStore, catalog *service.Catalog) {
	if err := store.Save(ctx, catalog.Export()); err != nil {
		log.Printf("persist catalog: %v", err)
	}
}

func printHeader(title string) {
	fmt.Println(strings.Repeat("=", 40))
	fmt.Println(title)
	fmt.Println(strings.Repeat("=", 40))
}

func readLine(in *bufio.Reader, prompt string) string {
	for {
		fmt.Print(prompt)
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			// stdin closed; nothing more to read
			fmt.Println()
			os.Exit(0)
		}
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
		fmt.Println("Input must not be empty.")
	}
}

func readInt(in *bufio.Reader, prompt string, min, max int) int {
	for {
		s := readLine(in, prompt)
		n, err := strconv.Atoi(s)
		if err != nil || n < min || n > max {
			fmt.Printf("Invalid input. Please enter a number between %d and %d.\n", min, max)
			continue
		}
		return n
	}
}

func readNonNegInt(in *bufio.Reader, prompt string) int {
	for {
		s := readLine(in, prompt)
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			fmt.Println("Invalid input. Please enter a non-negative number.")
			continue
		}
		return n
	}
}

func readPositiveInt(in *bufio.Reader, prompt string) int {
	for {
		s := readLine(in, prompt)
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			fmt.Println("Invalid input. Please enter a positive number.")
			continue
		}
		return n
	}
}

func readFloat(in *bufio.Reader, prompt string) float64 {
	for {
		s := readLine(in, prompt)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 {
			fmt.Println("Invalid input. Please enter a non-negative number.")
			continue
		}
		return f
	}
}
