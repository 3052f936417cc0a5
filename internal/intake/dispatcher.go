// Copyright (c) 2026 Warehouse 21. All rights reserved.

package intake

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/warehouse21/stockroom/internal/catalog"
	"github.com/warehouse21/stockroom/internal/platform/constants"
)

// Fixed user-visible replies. The acknowledgement is generated locally so
// the confirmation always reflects the actual database write, never the
// model's phrasing.
const (
	replyAcknowledge       = "ACKNOWLEDGE. ADDED %d %s. STOCK UPDATED."
	replyFailure           = "COMMUNICATION FAILURE. INTERFERENCE DETECTED."
	replyMissingCredential = "SYSTEM ERROR: API_KEY_MISSING. CONTACT ADMIN."
)

// inventoryFetchLimit bounds the snapshot rendered for the model on the
// inventory-query path.
const inventoryFetchLimit = 500

// Catalog is the dispatcher's view of the catalog service.
type Catalog interface {
	GetCategoryBySlug(context context.Context, slug string) (*catalog.Category, error)
	CreateItem(context context.Context, input catalog.ItemInput) (*catalog.Item, error)
	ListItems(context context.Context, limit, offset int) ([]*catalog.Item, int, error)
}

// Dispatcher drives the intake protocol. It absorbs every failure: no error
// ever escapes to the caller, only a fixed in-persona advisory string.
//
// A nil model marks the intake surface as disabled (no credential at
// startup); dispatch then short-circuits without any network call.
type Dispatcher struct {
	model   Model
	catalog Catalog
	logger  *slog.Logger
}

// NewDispatcher constructs a [Dispatcher]. Pass a nil model when no service
// credential is configured.
func NewDispatcher(model Model, catalogService Catalog, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		model:   model,
		catalog: catalogService,
		logger:  logger,
	}
}

// Enabled reports whether a model credential was configured.
func (dispatcher *Dispatcher) Enabled() bool {
	return dispatcher.model != nil
}

/*
Handle runs one message through the intake protocol and always produces a
reply string.

Description: Plain model text is returned verbatim. An add_item invocation
resolves the category (falling back to the miscellaneous category for
unknown slugs), writes exactly one item, and acknowledges with the locally
generated confirmation. A get_inventory invocation triggers the two-step
read-then-summarize pipeline. Any failure at any step yields the fixed
communication-failure reply; the cause is logged, never surfaced. No retries.

Parameters:
  - context: context.Context
  - message: string

Returns:
  - string: Reply text, never empty
*/
func (dispatcher *Dispatcher) Handle(context context.Context, message string) string {
	if dispatcher.model == nil {
		return replyMissingCredential
	}

	outcome, err := dispatcher.model.Dispatch(context, message)
	if err != nil {
		dispatcher.logger.Error("intake dispatch failed", "error", err)
		return replyFailure
	}

	switch decided := outcome.(type) {
	case PlainReply:
		return decided.Text

	case AddItemCall:
		return dispatcher.addItem(context, decided)

	case GetInventoryCall:
		return dispatcher.suggestFromInventory(context, message)

	default:
		dispatcher.logger.Error("intake produced unknown outcome", "type", fmt.Sprintf("%T", outcome))
		return replyFailure
	}
}

// addItem resolves the category and writes exactly one item.
func (dispatcher *Dispatcher) addItem(context context.Context, call AddItemCall) string {
	category, err := dispatcher.catalog.GetCategoryBySlug(context, call.CategorySlug)
	if err != nil {
		// Unknown slug from the model: fall back to the miscellaneous
		// category rather than failing the intake.
		category, err = dispatcher.catalog.GetCategoryBySlug(context, constants.FallbackCategorySlug)
		if err != nil {
			dispatcher.logger.Error("intake fallback category missing",
				"requested", call.CategorySlug, "fallback", constants.FallbackCategorySlug, "error", err)
			return replyFailure
		}
	}

	item, err := dispatcher.catalog.CreateItem(context, catalog.ItemInput{
		Name:       call.Name,
		Quantity:   call.Quantity,
		IconType:   call.IconType,
		CategoryID: category.ID,
	})
	if err != nil {
		dispatcher.logger.Error("intake item creation failed", "name", call.Name, "error", err)
		return replyFailure
	}

	dispatcher.logger.Info("intake stored item",
		"id", item.ID, "name", item.Name, "quantity", item.Quantity, "category", category.Slug)
	return fmt.Sprintf(replyAcknowledge, item.Quantity, item.Name)
}

// suggestFromInventory runs the two-step read-then-summarize pipeline. The
// snapshot and the second model call are deliberately not transactional; the
// inventory may change in between.
func (dispatcher *Dispatcher) suggestFromInventory(context context.Context, message string) string {
	items, _, err := dispatcher.catalog.ListItems(context, inventoryFetchLimit, 0)
	if err != nil {
		dispatcher.logger.Error("intake inventory read failed", "error", err)
		return replyFailure
	}

	reply, err := dispatcher.model.Summarize(context, message, renderInventory(items))
	if err != nil {
		dispatcher.logger.Error("intake summarize failed", "error", err)
		return replyFailure
	}
	return reply
}

// renderInventory produces the compact "name (quantity)" listing fed to the
// model as plain context.
func renderInventory(items []*catalog.Item) string {
	if len(items) == 0 {
		return "empty"
	}
	entries := make([]string, 0, len(items))
	for _, item := range items {
		entries = append(entries, fmt.Sprintf("%s (%d)", item.Name, item.Quantity))
	}
	return strings.Join(entries, ", ")
}
