// Package archive ships conversation entries to Elasticsearch for analytics
// and search. Indexing is best effort; a failure is logged and the
// conversation continues.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"whatsapp-orderbot/internal/common/logger"
	"whatsapp-orderbot/internal/models"
)

type Indexer struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewIndexer(client *elasticsearch.Client, index string, log logger.Logger) *Indexer {
	if index == "" {
		index = "conversations"
	}
	return &Indexer{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "archive"}),
	}
}

type conversationDoc struct {
	CustomerPhone string    `json:"customer_phone"`
	Direction     string    `json:"direction"`
	Body          string    `json:"body"`
	Intent        string    `json:"intent,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// IndexConversation stores one conversation entry.
func (i *Indexer) IndexConversation(ctx context.Context, entry models.ConversationEntry) error {
	doc := conversationDoc{
		CustomerPhone: entry.CustomerPhone,
		Direction:     entry.Direction,
		Body:          entry.Body,
		Intent:        entry.Intent,
		Timestamp:     entry.CreatedAt,
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode conversation doc: %w", err)
	}

	req := esapi.IndexRequest{
		Index: i.index,
		Body:  bytes.NewReader(raw),
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("index conversation: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index conversation: %s", res.Status())
	}

	i.logger.Debug("conversation indexed", map[string]interface{}{
		"phone":     entry.CustomerPhone,
		"direction": entry.Direction,
	})
	return nil
}
