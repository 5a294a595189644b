package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is an open key/value record (projects and blogs).
//
// It marshals to JSON with _id as a hex string. Request bodies are decoded
// as plain JSON: keys such as "$date" are stored as written, and integral
// numbers become int32 or int64 instead of float64.
type Document bson.M

// ErrNotObject is returned when a body is valid JSON but not an object.
var ErrNotObject = errors.New("body must be a JSON object")

// UnmarshalJSON accepts only JSON objects; null, arrays and scalars are
// rejected.
func (d *Document) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %w", ErrNotObject, err)
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		return ErrNotObject
	}
	*d = Document(fromJSONObject(obj))
	return nil
}

func fromJSONObject(obj map[string]interface{}) bson.M {
	out := make(bson.M, len(obj))
	for k, v := range obj {
		out[k] = fromJSONValue(v)
	}
	return out
}

// fromJSONValue maps decoded JSON onto the types the driver itself decodes
// BSON into, so a document looks the same before and after a store trip.
func fromJSONValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return fromJSONObject(t)
	case []interface{}:
		out := make(bson.A, len(t))
		for i, val := range t {
			out[i] = fromJSONValue(val)
		}
		return out
	case json.Number:
		return fromJSONNumber(t)
	default:
		return v
	}
}

// fromJSONNumber keeps integers integral: int32 when it fits, then int64.
// Anything else, including 1.0 and 1e3, is a float64.
func fromJSONNumber(n json.Number) interface{} {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return int32(i)
		}
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// MarshalJSON renders driver values as plain JSON, so an ObjectID is
// written as its hex string rather than {"$oid": ...}.
func (d Document) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	return json.Marshal(toJSONValue(bson.M(d)))
}

// ID returns the document's _id, or NilObjectID when absent.
func (d Document) ID() primitive.ObjectID {
	id, _ := d["_id"].(primitive.ObjectID)
	return id
}

// WithoutID returns a shallow copy with _id removed. Ids are assigned by
// the store and never taken from a request body.
func (d Document) WithoutID() Document {
	out := make(Document, len(d))
	for k, v := range d {
		if k == "_id" {
			continue
		}
		out[k] = v
	}
	return out
}

// toJSONValue converts the driver's decoded values into plain Go values
// encoding/json understands.
func toJSONValue(v interface{}) interface{} {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.Decimal128:
		return t.String()
	case primitive.M:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = toJSONValue(val)
		}
		return out
	case primitive.D:
		out := make(map[string]interface{}, len(t))
		for _, e := range t {
			out[e.Key] = toJSONValue(e.Value)
		}
		return out
	case primitive.A:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = toJSONValue(val)
		}
		return out
	case Document:
		return toJSONValue(bson.M(t))
	default:
		return v
	}
}
