package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/rl1809/console-cart/internal/apperrors"
	"github.com/rl1809/console-cart/internal/core/service"
)

const (
	optionList = iota + 1
	optionAdd
	optionEdit
	optionRemove
	optionView
	optionCheckout
	optionExit
)

var menuItems = []string{
	"List available products",
	"Add product to cart",
	"Edit quantity in cart",
	"Remove product from cart",
	"View cart",
	"Checkout and print invoice",
	"Exit",
}

// Handler runs the interactive menu for one shopping session.
type Handler struct {
	inventory *service.InventoryService
	cart      *service.CartService
	checkout  *service.CheckoutService
	in        *bufio.Scanner
	out       io.Writer
	logger    *log.Logger

	lines chan inputLine
	done  chan struct{}
}

func NewHandler(
	inventory *service.InventoryService,
	cart *service.CartService,
	checkout *service.CheckoutService,
	in io.Reader,
	out io.Writer,
	logger *log.Logger,
) *Handler {
	return &Handler{
		inventory: inventory,
		cart:      cart,
		checkout:  checkout,
		in:        bufio.NewScanner(in),
		out:       out,
		logger:    logger,
	}
}

// Run shows the menu until the shopper exits, ends the session after a
// purchase, input runs out or ctx is cancelled. Failed options never stop
// the loop. Run must be called at most once.
func (h *Handler) Run(ctx context.Context) error {
	h.lines = make(chan inputLine)
	h.done = make(chan struct{})
	defer close(h.done)
	go h.readInput()

	for {
		h.printMenu()

		input, err := h.readLine(ctx, fmt.Sprintf("Choose an option (1-%d): ", len(menuItems)))
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				break
			}
			return err
		}

		option, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintln(h.out, "Invalid input. Try again.")
			h.logger.WithField("input", input).Error("non-numeric menu option")
			continue
		}

		exit, err := h.dispatch(ctx, option)
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			break
		}
		if err != nil {
			h.report(err)
		}
		if exit {
			break
		}
	}

	fmt.Fprintln(h.out, "Thanks for shopping!")
	return nil
}

func (h *Handler) dispatch(ctx context.Context, option int) (exit bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.Unexpected(fmt.Errorf("panic: %v", r), fmt.Sprintf("option %d failed", option))
		}
	}()

	switch option {
	case optionList:
		return false, h.listProducts(ctx)
	case optionAdd:
		return false, h.addToCart(ctx)
	case optionEdit:
		return false, h.editCartLine(ctx)
	case optionRemove:
		return false, h.removeFromCart(ctx)
	case optionView:
		return false, h.viewCart(ctx)
	case optionCheckout:
		return h.confirmPurchase(ctx)
	case optionExit:
		return true, nil
	default:
		fmt.Fprintf(h.out, "Invalid option. Choose between 1 and %d.\n", len(menuItems))
		return false, nil
	}
}

// report shows err to the shopper. Input-format and unexpected errors also
// go to the error log; business-rule refusals do not.
func (h *Handler) report(err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindBusinessRule:
		fmt.Fprintf(h.out, "Could not complete: %s.\n", apperrors.MessageOf(err))
	case apperrors.KindInputFormat:
		fmt.Fprintf(h.out, "Invalid input: %s.\n", apperrors.MessageOf(err))
		h.logger.Error(apperrors.MessageOf(err))
	default:
		fmt.Fprintf(h.out, "An error occurred: %s. Try again.\n", apperrors.MessageOf(err))
		entry := log.NewEntry(h.logger)
		if stack := apperrors.Stack(err); stack != "" {
			entry = entry.WithField("stack", stack)
		}
		entry.Error(apperrors.Format(err))
	}
}

func (h *Handler) printMenu() {
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, "=== Console Shopping Cart ===")
	for i, item := range menuItems {
		fmt.Fprintf(h.out, "  %d. %s\n", i+1, item)
	}
}

func (h *Handler) listProducts(ctx context.Context) error {
	entries, err := h.inventory.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(h.out, "No products available right now. Come back later!")
		return nil
	}
	RenderCatalog(h.out, entries)
	return nil
}

func (h *Handler) addToCart(ctx context.Context) error {
	fmt.Fprintln(h.out, "\n=== Add Product to Cart ===")
	if err := h.listProducts(ctx); err != nil {
		return err
	}

	code, err := h.promptCode(ctx, "Product code: ")
	if err != nil {
		return err
	}
	entry, err := h.inventory.Find(ctx, code)
	if err != nil {
		return err
	}
	if entry == nil {
		return service.ErrProductNotFound
	}

	qty, err := h.promptQuantity(ctx, "Quantity: ")
	if err != nil {
		return err
	}

	ok, err := h.confirm(ctx, fmt.Sprintf("Add %d units of %s?", qty, code))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(h.out, "Action cancelled.")
		return nil
	}

	if err := h.cart.AddLine(ctx, code, qty); err != nil {
		return err
	}
	fmt.Fprintln(h.out, "Product added.")
	return nil
}

func (h *Handler) editCartLine(ctx context.Context) error {
	if h.cart.IsEmpty() {
		fmt.Fprintln(h.out, "Cart is empty, nothing to edit.")
		return nil
	}
	fmt.Fprintln(h.out, "\n=== Edit Cart Line ===")
	if err := h.viewCart(ctx); err != nil {
		return err
	}

	code, err := h.promptCode(ctx, "Product code to edit: ")
	if err != nil {
		return err
	}
	if !h.inCart(code) {
		return service.ErrLineNotFound
	}

	qty, err := h.promptQuantity(ctx, "New quantity: ")
	if err != nil {
		return err
	}

	ok, err := h.confirm(ctx, fmt.Sprintf("Change %s to %d units?", code, qty))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(h.out, "Action cancelled.")
		return nil
	}

	if err := h.cart.EditLine(ctx, code, qty); err != nil {
		return err
	}
	fmt.Fprintln(h.out, "Quantity updated.")
	return nil
}

func (h *Handler) removeFromCart(ctx context.Context) error {
	if h.cart.IsEmpty() {
		fmt.Fprintln(h.out, "Cart is empty, nothing to remove.")
		return nil
	}
	fmt.Fprintln(h.out, "\n=== Remove Product from Cart ===")
	if err := h.viewCart(ctx); err != nil {
		return err
	}

	code, err := h.promptCode(ctx, "Product code to remove: ")
	if err != nil {
		return err
	}

	ok, err := h.confirm(ctx, fmt.Sprintf("Remove %s from the cart?", code))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(h.out, "Action cancelled.")
		return nil
	}

	if err := h.cart.RemoveLine(ctx, code); err != nil {
		return err
	}
	fmt.Fprintln(h.out, "Product removed.")
	return nil
}

func (h *Handler) viewCart(ctx context.Context) error {
	items, err := h.cart.Items(ctx)
	if err != nil {
		return err
	}
	renderCart(h.out, items)
	return nil
}

// confirmPurchase returns exit=true when the shopper ends the session after
// buying.
func (h *Handler) confirmPurchase(ctx context.Context) (bool, error) {
	if h.cart.IsEmpty() {
		fmt.Fprintln(h.out, "\nCart is empty. Nothing to buy.")
		return false, nil
	}

	invoice, err := h.checkout.Quote(ctx)
	if err != nil {
		return false, err
	}

	fmt.Fprintln(h.out, "\n=== Invoice ===")
	renderCart(h.out, invoice.Items)
	renderInvoice(h.out, invoice)

	ok, err := h.confirm(ctx, "Confirm purchase?")
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(h.out, "Purchase cancelled.")
		return false, nil
	}

	receipt, err := h.checkout.Confirm(ctx, invoice)
	if err != nil {
		return false, err
	}
	fmt.Fprintf(h.out, "Purchase confirmed. Inventory updated. Receipt %s\n", receipt.ID)

	more, err := h.confirm(ctx, "Keep shopping?")
	if err != nil {
		return true, err
	}
	if !more {
		fmt.Fprintln(h.out, "Session ended.")
		return true, nil
	}

	h.cart.Clear()
	fmt.Fprintln(h.out, "Cart cleared. You can keep shopping!")
	return false, nil
}

func (h *Handler) inCart(code string) bool {
	for _, line := range h.cart.Snapshot() {
		if line.Code == code {
			return true
		}
	}
	return false
}
