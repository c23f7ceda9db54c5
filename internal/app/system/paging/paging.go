// Package paging implements keyset pagination for the JSON list endpoints.
//
// Lists are ordered by a case-folded sort key plus _id. Clients page with
// opaque cursors: ?after=<next> moves forward, ?before=<prev> moves back.
// Each query fetches one row more than the page size to learn whether
// another page exists in that direction.
package paging

import (
	"net/http"
	"slices"
	"strconv"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	PageSize    = 50
	MaxPageSize = 200
)

// Request is the paging part of a list query.
type Request struct {
	After  string
	Before string
	Limit  int
}

// ParseRequest reads after, before and limit from the query string. A
// missing or bad limit falls back to PageSize; larger values are capped at
// MaxPageSize.
func ParseRequest(r *http.Request) Request {
	req := Request{
		After:  query.Get(r, "after"),
		Before: query.Get(r, "before"),
		Limit:  PageSize,
	}
	if s := query.Get(r, "limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			req.Limit = min(n, MaxPageSize)
		}
	}
	return req
}

func (req Request) size() int {
	if req.Limit <= 0 {
		return PageSize
	}
	return min(req.Limit, MaxPageSize)
}

// Direction indicates the pagination direction.
type Direction int

const (
	Forward  Direction = iota // ascending, "gt" on the cursor
	Backward                  // descending, "lt" on the cursor
)

// Keyset is a decoded Request ready to be applied to a query.
type Keyset struct {
	Direction Direction
	SortOrder int
	Cursor    *wafflemongo.Cursor
	size      int
}

// Configure decodes the request's cursor. before wins when both are set;
// an undecodable cursor is ignored and the first page is served.
func (req Request) Configure() Keyset {
	ks := Keyset{Direction: Forward, SortOrder: 1, size: req.size()}

	raw := req.After
	if req.Before != "" {
		ks.Direction = Backward
		ks.SortOrder = -1
		raw = req.Before
	}
	if raw != "" {
		if c, ok := wafflemongo.DecodeCursor(raw); ok {
			ks.Cursor = &c
		}
	}
	return ks
}

// ApplyToFind sets sort and look-ahead limit on find.
func (ks Keyset) ApplyToFind(find *options.FindOptions, sortField string) {
	find.SetSort(bson.D{
		{Key: sortField, Value: ks.SortOrder},
		{Key: "_id", Value: ks.SortOrder},
	}).SetLimit(int64(ks.size + 1))
}

// Window returns the filter clause that starts the page after the cursor,
// or nil on a first page.
func (ks Keyset) Window(sortField string) bson.M {
	if ks.Cursor == nil {
		return nil
	}
	dir := "gt"
	if ks.Direction == Backward {
		dir = "lt"
	}
	return wafflemongo.KeysetWindow(sortField, dir, ks.Cursor.CI, ks.Cursor.ID)
}

// Page is one page of a list response.
type Page[T any] struct {
	Items   []T    `json:"items"`
	HasPrev bool   `json:"has_prev"`
	HasNext bool   `json:"has_next"`
	Prev    string `json:"prev,omitempty"`
	Next    string `json:"next,omitempty"`
}

// Build trims the look-ahead row, restores ascending order on backward
// pages and encodes the cursors for the neighbouring pages.
func Build[T any](rows []T, ks Keyset, keyFn func(T) string, idFn func(T) primitive.ObjectID) Page[T] {
	p := Page[T]{}
	if ks.Direction == Backward {
		if len(rows) > ks.size {
			rows = rows[:ks.size]
			p.HasPrev = true
		}
		slices.Reverse(rows)
		p.HasNext = ks.Cursor != nil
	} else {
		if len(rows) > ks.size {
			rows = rows[:ks.size]
			p.HasNext = true
		}
		p.HasPrev = ks.Cursor != nil
	}

	if rows == nil {
		rows = []T{}
	}
	p.Items = rows
	if len(rows) > 0 {
		first, last := rows[0], rows[len(rows)-1]
		if p.HasPrev {
			p.Prev = wafflemongo.EncodeCursor(keyFn(first), idFn(first))
		}
		if p.HasNext {
			p.Next = wafflemongo.EncodeCursor(keyFn(last), idFn(last))
		}
	}
	return p
}
