package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whatsapp-orderbot/internal/models"
)

// ==========================
// Intent Classification Tests
// ==========================

func TestClassify_SingleIntent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected models.Intent
	}{
		{"order create verb", "i would like to buy something", models.IntentOrderCreate},
		{"order create phrase", "please place a new order for me", models.IntentOrderCreate},
		{"order status", "track my shipment please", models.IntentOrderStatus},
		{"order status with id", "where is ord-1234", models.IntentOrderStatus},
		{"order cancel", "cancel my order", models.IntentOrderCancel},
		{"faq hours", "when do you open", models.IntentFaqHours},
		{"faq contact", "how do i reach you by email", models.IntentFaqContact},
		{"help", "help me with support", models.IntentHelp},
		{"greeting", "good morning", models.IntentGreeting},
		{"rejection", "not interested, don't want it", models.IntentRejectResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, confidence := Classify(tt.text)
			assert.Equal(t, tt.expected, intent)
			assert.Greater(t, confidence, 0.0)
		})
	}
}

func TestClassify_NoMatch(t *testing.T) {
	intent, confidence := Classify("zzz qqq xyzzy")
	assert.Equal(t, models.IntentUnknown, intent)
	assert.Equal(t, 0.0, confidence)
}

func TestClassify_ConfidenceSaturates(t *testing.T) {
	// Four matches at 0.3 each would exceed 1.0 without the cap.
	_, confidence := Classify("buy buy buy buy buy buy")
	assert.Equal(t, 1.0, confidence)
}

func TestClassify_TieBreakDeclarationOrder(t *testing.T) {
	// "stop the order" scores 1 for OrderCreate ("order") and 1 for
	// OrderCancel ("stop"); the first declared maximum wins.
	intent, _ := Classify("stop the order")
	assert.Equal(t, models.IntentOrderCreate, intent)
}

// ==========================
// Entity Extraction Tests
// ==========================

func TestExtractEntities_OrderID(t *testing.T) {
	entities := ExtractEntities("order ORD-1234")
	require.Contains(t, entities, "order_id")
	assert.Equal(t, []string{"1234"}, entities["order_id"])
}

func TestExtractEntities_NoEmptyLists(t *testing.T) {
	entities := ExtractEntities("just words")
	for entityType, values := range entities {
		assert.NotEmpty(t, values, "entity type %s present with empty list", entityType)
	}
	assert.NotContains(t, entities, "email")
}

func TestExtractEntities_Types(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		entityType string
		expected   []string
	}{
		{"email", "write to jane@example.com please", "email", []string{"jane@example.com"}},
		{"phone", "call +1 555-010-9999", "phone_number", []string{"+1 555-010-9999"}},
		{"quantity with unit", "I need 3 pieces", "quantity", []string{"3"}},
		{"product base noun", "two laptops and a monitor", "product", []string{"laptop", "monitor"}},
		{"multiple order ids in order", "ord 111 then ord-222", "order_id", []string{"111", "222"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities := ExtractEntities(tt.text)
			require.Contains(t, entities, tt.entityType)
			assert.Equal(t, tt.expected, entities[tt.entityType])
		})
	}
}

func TestExtractOrderID(t *testing.T) {
	assert.Equal(t, "9876", ExtractOrderID("status of ORD-9876 please"))
	assert.Equal(t, "", ExtractOrderID("no id here"))
}

// ==========================
// Order Details Tests
// ==========================

func TestExtractOrderDetails_LabeledFields(t *testing.T) {
	details := ExtractOrderDetails("Name: Jane\nPhone: 555\nAddress: 1 Main St\nI want a laptop")

	assert.Equal(t, "Jane", details.CustomerName)
	assert.Equal(t, "555", details.CustomerPhone)
	assert.Equal(t, "1 Main St", details.Address)
	assert.Equal(t, "I want a laptop", details.Product)
	assert.Equal(t, "1", details.Quantity)
}

func TestExtractOrderDetails_QuantityAndNotes(t *testing.T) {
	details := ExtractOrderDetails("Quantity: 4\nleave at the back door\nring twice")

	assert.Equal(t, "4", details.Quantity)
	assert.Equal(t, "leave at the back door ring twice", details.Notes)
}

func TestExtractOrderDetails_LabelOrderIrrelevant(t *testing.T) {
	a := ExtractOrderDetails("Name: Jo\nAddress: 5 High St")
	b := ExtractOrderDetails("Address: 5 High St\nName: Jo")

	assert.Equal(t, a.CustomerName, b.CustomerName)
	assert.Equal(t, a.Address, b.Address)
}

// ==========================
// Parse Tests
// ==========================

func TestParse_FullResult(t *testing.T) {
	parsed := Parse("  Hello, I want to ORDER a laptop  ")

	assert.Equal(t, "  Hello, I want to ORDER a laptop  ", parsed.OriginalMessage)
	assert.Equal(t, models.IntentOrderCreate, parsed.Intent)
	assert.Greater(t, parsed.Confidence, 0.0)
	assert.Contains(t, parsed.Entities, "product")
	assert.Equal(t, 7, parsed.WordCount)
}

func TestParse_Unknown(t *testing.T) {
	parsed := Parse("xyzzy plugh")
	assert.Equal(t, models.IntentUnknown, parsed.Intent)
	assert.Equal(t, 0.0, parsed.Confidence)
}
