package btcfolio

import (
	"encoding/json"
	"testing"
)

func TestJSONObject(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObject
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		var w jsonObject
		w.Append("kind", "sell")
		w.Append("a", 1)
		w.Optional("skipped", "")
		w.Optional("b", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"kind":"sell","a":1,"b":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("error is sticky", func(t *testing.T) {
		var w jsonObject
		w.Append("bad", make(chan int))
		w.Append("a", 1)
		if _, err := w.MarshalJSON(); err == nil {
			t.Error("expected an error for an unmarshalable value")
		}
	})
}

func TestMoney_MarshalJSON(t *testing.T) {
	got, err := json.Marshal(M(1234.5678, "BRL"))
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"currency":"BRL","amount":"1234.57"}`; string(got) != want {
		t.Errorf("json.Marshal(Money) = %s, want %s", got, want)
	}
}
