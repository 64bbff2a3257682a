package tariff

import (
	"testing"

	"github.com/polkiloo/tariffbot/internal/domain/model"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	basic, ok := c.Get("BASIC")
	if !ok {
		t.Fatal("expected BASIC tariff")
	}
	if basic.AmountKopecks != 100000 {
		t.Fatalf("expected BASIC amount 100000 kopecks, got %d", basic.AmountKopecks)
	}

	pro, ok := c.Get("PRO")
	if !ok {
		t.Fatal("expected PRO tariff")
	}
	if pro.AmountKopecks != 250000 {
		t.Fatalf("expected PRO amount 250000 kopecks, got %d", pro.AmountKopecks)
	}

	if _, ok := c.Get("ULTRA"); ok {
		t.Fatal("did not expect unknown tariff to resolve")
	}
}

func TestCatalogPreservesOrderAndIgnoresDuplicates(t *testing.T) {
	c := NewCatalog(
		model.Tariff{Code: "A", AmountKopecks: 100},
		model.Tariff{Code: "B", AmountKopecks: 200},
		model.Tariff{Code: "A", AmountKopecks: 999},
	)

	all := c.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 tariffs, got %d", len(all))
	}
	if all[0].Code != "A" || all[1].Code != "B" {
		t.Fatalf("unexpected catalog order: %v", all)
	}
	if all[0].AmountKopecks != 100 {
		t.Fatalf("expected first definition to win, got %d", all[0].AmountKopecks)
	}
}
