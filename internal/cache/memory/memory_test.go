package memory_test

import (
	"testing"
	"time"

	"github.com/dropDatabas3/comandas/internal/cache/memory"
)

func TestMemoryCache(t *testing.T) {
	c := memory.New(time.Minute)

	if _, ok := c.Get("k"); ok {
		t.Fatal("key inexistente no debería estar")
	}

	c.Set("k", []byte("v"), time.Minute)
	got, ok := c.Get("k")
	if !ok || string(got) != "v" {
		t.Fatalf("Get = (%q, %v), esperado (v, true)", got, ok)
	}

	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("la key debería haberse borrado")
	}
}
