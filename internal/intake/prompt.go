// Copyright (c) 2026 Warehouse 21. All rights reserved.

package intake

import "github.com/google/generative-ai-go/genai"

// # Persona & Tooling

// systemPrompt fixes the Stockman persona and the mapping guidance the model
// follows when converting free text into tool arguments.
const systemPrompt = `
You are "Stockman", the AI Quartermaster of Warehouse 21 (a post-apocalyptic bunker).
Your persona: Grumpy but helpful, retro-futuristic, speaks in short terminal-like sentences.
Use slang like "Ration", "Unit", "Supply".

You have access to the inventory database.
When user asks to ADD items:
1. Identify the item name and quantity.
2. Map it to one of these categories: Food (food), Drinks (drinks), Misc (misc).
3. Map it to an icon:
   - Food: can_meat.png, can_fish.png, jar.png, bowl.png, box.png
   - Drinks: bottle_5l.png, bottle_2l.png, can_drink.png, bottle_glass.png
   - Misc: pack_generic.png
4. Call the ` + "`add_item`" + ` function.

When user asks "What to cook?":
1. Call ` + "`get_inventory`" + ` first.
2. Suggest a "wasteland recipe" based on available items.
`

// Tool and argument names shared between declarations and response parsing.
const (
	toolAddItem      = "add_item"
	toolGetInventory = "get_inventory"

	argName         = "name"
	argQuantity     = "quantity"
	argCategorySlug = "category_slug"
	argIconType     = "icon_type"
)

// intakeTools declares the two capabilities exposed to the model.
func intakeTools() []*genai.Tool {
	return []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        toolAddItem,
					Description: "Add an item to the inventory.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							argName: {
								Type:        genai.TypeString,
								Description: "Display name of the item.",
							},
							argQuantity: {
								Type:        genai.TypeInteger,
								Description: "Number of units to register.",
							},
							argCategorySlug: {
								Type:        genai.TypeString,
								Description: "Category slug: food, drinks, or misc.",
							},
							argIconType: {
								Type:        genai.TypeString,
								Description: "Icon filename from the allowed list.",
							},
						},
						Required: []string{argName, argQuantity, argCategorySlug, argIconType},
					},
				},
				{
					Name:        toolGetInventory,
					Description: "Get current inventory list.",
				},
			},
		},
	}
}
