package folio

import (
	"encoding/json"
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("simple object", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("b", 1).Append("a", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"b":1,"a":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("raw values are written as is", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", json.RawMessage(`{"z": 1.50,  "y":[ ]}`))
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"a":{"z": 1.50,  "y":[ ]}}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("no html escaping", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("<k>", "a & b 恒生")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"<k>":"a & b 恒生"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("first error wins", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", func() {}).Append("b", 1)
		if _, err := w.MarshalJSON(); err == nil {
			t.Errorf("MarshalJSON() = nil error, want an error")
		}
	})
}

func TestObject(t *testing.T) {
	var o object
	if err := json.Unmarshal([]byte(`{"z":1, "a":null, "m":"x", "n":2.5}`), &o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := o.get("a"); ok {
		t.Errorf("get(%q) found a null member", "a")
	}
	if got, ok := o.number("n"); !ok || got != 2.5 {
		t.Errorf("number(%q) = %v, %v, want 2.5, true", "n", got, ok)
	}
	if _, ok := o.number("m"); ok {
		t.Errorf("number(%q) accepted a string", "m")
	}
	if got, ok := o.text("m"); !ok || got != "x" {
		t.Errorf("text(%q) = %q, %v, want %q, true", "m", got, ok, "x")
	}

	if err := o.set("z", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := o.set("b", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `{"z":3,"a":null,"m":"x","n":2.5,"b":true}`; string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
