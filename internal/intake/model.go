// Copyright (c) 2026 Warehouse 21. All rights reserved.

/*
Package intake converts one free-text operator message into at most one
catalog action, using an external conversational language model.

Architecture:

  - Model: Abstracted two-call surface over the external service.
  - Outcome: Closed set of results a dispatch call can produce.
  - Dispatcher: The protocol driver; owns all failure absorption.
  - GeminiModel: Production [Model] backed by Google Gemini.

No conversational state is carried across requests. Every message is an
independent round trip (or two, on the inventory-query path).
*/
package intake

import "context"

// Model is the dispatcher's view of the external language model.
type Model interface {

	/*
		Dispatch sends one user message with the fixed persona and tool
		declarations, returning whatever the model decided: plain text or a
		single tool invocation.

		Parameters:
		  - context: context.Context
		  - message: string

		Returns:
		  - Outcome: One of [PlainReply], [AddItemCall], [GetInventoryCall]
		  - error: Transport or service failures
	*/
	Dispatch(context context.Context, message string) (Outcome, error)

	/*
		Summarize issues the second, independent call of the inventory-query
		path: the original message plus a rendered inventory snapshot as
		plain context, asking for a suggestion.

		Parameters:
		  - context: context.Context
		  - message: string (original user message)
		  - inventory: string (compact human-readable stock summary)

		Returns:
		  - string: Model-phrased suggestion text
		  - error: Transport or service failures
	*/
	Summarize(context context.Context, message, inventory string) (string, error)
}

// Outcome is the closed set of results a [Model.Dispatch] call can produce.
type Outcome interface {
	isOutcome()
}

// PlainReply carries verbatim model text; no tool was invoked.
type PlainReply struct {
	Text string
}

// AddItemCall carries the arguments of an add_item tool invocation, already
// coerced to native types.
type AddItemCall struct {
	Name         string
	Quantity     int
	CategorySlug string
	IconType     string
}

// GetInventoryCall signals a get_inventory tool invocation.
type GetInventoryCall struct{}

func (PlainReply) isOutcome()       {}
func (AddItemCall) isOutcome()      {}
func (GetInventoryCall) isOutcome() {}
