package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/fittrack-api/internal/domain/entity"
)

const (
	requestTimeout    = 3 * time.Second
	bulkTimeout       = 30 * time.Second
	defaultSearchSize = 20
	maxSearchSize     = 100
)

// UserIndex keeps a searchable copy of user identity fields.
// A nil client disables it: Index is a no-op and Enabled reports false.
type UserIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewUserIndex(es *elasticsearch.Client, index string) *UserIndex {
	return &UserIndex{ES: es, Index: index}
}

func (x *UserIndex) Enabled() bool {
	return x != nil && x.ES != nil && x.Index != ""
}

// userMapping keeps ids and role as exact keywords and names as analysed text.
var userMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"id":         map[string]any{"type": "keyword"},
			"email":      map[string]any{"type": "text", "fields": map[string]any{"raw": map[string]any{"type": "keyword"}}},
			"first_name": map[string]any{"type": "text"},
			"last_name":  map[string]any{"type": "text"},
			"role":       map[string]any{"type": "keyword"},
			"is_active":  map[string]any{"type": "boolean"},
			"created_at": map[string]any{"type": "date"},
		},
	},
}

// EnsureIndex creates the index with its mapping unless it already exists.
// It doubles as the startup reachability check.
func (x *UserIndex) EnsureIndex(ctx context.Context) error {
	if !x.Enabled() {
		return nil
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := esapi.IndicesExistsRequest{Index: []string{x.Index}}.Do(c, x.ES)
	if err != nil {
		return fmt.Errorf("es exists: %w", err)
	}
	_ = res.Body.Close()
	switch res.StatusCode {
	case 200:
		return nil
	case 404:
	default:
		return fmt.Errorf("es exists: %s", res.Status())
	}

	b, _ := json.Marshal(userMapping)
	res, err = esapi.IndicesCreateRequest{Index: x.Index, Body: bytes.NewReader(b)}.Do(c, x.ES)
	if err != nil {
		return fmt.Errorf("es create index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	// 400 here is resource_already_exists from a concurrent starter
	if res.IsError() && res.StatusCode != 400 {
		return fmt.Errorf("es create index: %s", res.Status())
	}
	return nil
}

type userDoc struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

func docOf(u *entity.User) userDoc {
	return userDoc{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role.String(),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// Put indexes or replaces the document for u.
func (x *UserIndex) Put(ctx context.Context, u *entity.User) error {
	if !x.Enabled() {
		return nil
	}
	b, err := json.Marshal(docOf(u))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: u.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return fmt.Errorf("es index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// PutAll replaces the documents for users with one bulk request.
// Any rejected item fails the whole call.
func (x *UserIndex) PutAll(ctx context.Context, users []entity.User) error {
	if !x.Enabled() || len(users) == 0 {
		return nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i := range users {
		meta := map[string]any{"index": map[string]any{"_index": x.Index, "_id": users[i].ID}}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		if err := enc.Encode(docOf(&users[i])); err != nil {
			return err
		}
	}

	c, cancel := context.WithTimeout(ctx, bulkTimeout)
	defer cancel()
	res, err := esapi.BulkRequest{Body: &buf}.Do(c, x.ES)
	if err != nil {
		return fmt.Errorf("es bulk: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es bulk: %s", res.Status())
	}

	var parsed struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			ID     string `json:"_id"`
			Status int    `json:"status"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("es bulk decode: %w", err)
	}
	if !parsed.Errors {
		return nil
	}
	failed := 0
	for _, item := range parsed.Items {
		for _, r := range item {
			if r.Status >= 300 {
				failed++
			}
		}
	}
	return fmt.Errorf("es bulk: %d of %d documents rejected", failed, len(users))
}

// Remove deletes the document for id; a missing document is not an error.
func (x *UserIndex) Remove(ctx context.Context, id string) error {
	if !x.Enabled() {
		return nil
	}
	req := esapi.DeleteRequest{Index: x.Index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return fmt.Errorf("es delete: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// SearchIDs runs a multi_match over email and names and returns matching user ids by relevance.
func (x *UserIndex) SearchIDs(ctx context.Context, q string, size int) ([]string, error) {
	if !x.Enabled() {
		return []string{}, nil
	}
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"email^2", "first_name", "last_name"},
				"fuzziness": "AUTO",
			},
		},
		"size":    size,
		"_source": false,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("es search decode: %w", err)
	}

	out := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.ID)
	}
	return out, nil
}
