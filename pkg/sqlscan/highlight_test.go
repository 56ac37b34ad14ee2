package sqlscan

import (
	"testing"

	"github.com/renatotuller/rt-sql-studio/pkg/schema"
)

func shopGraph() ([]string, []schema.GraphEdge) {
	ids := []string{"shop.orders", "shop.customers", "shop.items", "archive.orders"}
	edges := []schema.GraphEdge{
		{ID: "e-oc", From: "shop.orders", To: "shop.customers", FromColumn: "customer_id", ToColumn: "id"},
		{ID: "e-oi", From: "shop.items", To: "shop.orders", FromColumn: "order_id", ToColumn: "id"},
		{ID: "e-ic", From: "shop.items", To: "shop.customers", FromColumn: "buyer_id", ToColumn: "id"},
	}
	return ids, edges
}

func TestHighlightQuery_QualifiedNames(t *testing.T) {
	ids, edges := shopGraph()
	hl := HighlightQuery(
		"SELECT * FROM shop.orders o JOIN shop.customers c ON o.customer_id = c.id",
		ids, edges)

	if _, ok := hl.NodeIDs["shop.orders"]; !ok {
		t.Errorf("shop.orders not highlighted: %v", hl.NodeIDs)
	}
	if _, ok := hl.NodeIDs["shop.customers"]; !ok {
		t.Errorf("shop.customers not highlighted: %v", hl.NodeIDs)
	}
	if _, ok := hl.EdgeIDs["e-oc"]; !ok || len(hl.EdgeIDs) != 1 {
		t.Errorf("expected exactly edge e-oc, got %v", hl.EdgeIDs)
	}
}

func TestHighlightQuery_BareNamesResolve(t *testing.T) {
	ids, edges := shopGraph()
	hl := HighlightQuery(
		"SELECT * FROM customers c JOIN items i ON i.buyer_id = c.id",
		ids, edges)

	if _, ok := hl.NodeIDs["shop.customers"]; !ok {
		t.Errorf("bare name did not resolve to shop.customers: %v", hl.NodeIDs)
	}
	if _, ok := hl.EdgeIDs["e-ic"]; !ok {
		t.Errorf("expected edge e-ic, got %v", hl.EdgeIDs)
	}
}

func TestHighlightQuery_AmbiguousBareName(t *testing.T) {
	ids, edges := shopGraph()
	// "orders" exists in both shop and archive; the first indexed
	// candidate wins.
	hl := HighlightQuery("SELECT * FROM orders", ids, edges)

	if _, ok := hl.NodeIDs["shop.orders"]; !ok {
		t.Errorf("ambiguous bare name should resolve to first candidate: %v", hl.NodeIDs)
	}
	if _, ok := hl.NodeIDs["archive.orders"]; ok {
		t.Errorf("only one candidate should be highlighted: %v", hl.NodeIDs)
	}
}

func TestHighlightQuery_ColumnMismatchRejectsEdge(t *testing.T) {
	ids, edges := shopGraph()
	hl := HighlightQuery(
		"SELECT * FROM shop.orders o JOIN shop.customers c ON o.legacy_ref = c.code",
		ids, edges)

	if len(hl.EdgeIDs) != 0 {
		t.Errorf("mismatching columns must not match any edge: %v", hl.EdgeIDs)
	}
	if len(hl.NodeIDs) != 2 {
		t.Errorf("both tables should still be highlighted: %v", hl.NodeIDs)
	}
}

func TestHighlightQuery_SwappedConditionStillMatches(t *testing.T) {
	ids, edges := shopGraph()
	hl := HighlightQuery(
		"SELECT * FROM shop.orders o JOIN shop.customers c ON c.id = o.customer_id",
		ids, edges)

	if _, ok := hl.EdgeIDs["e-oc"]; !ok {
		t.Errorf("reversed condition orientation must still match: %v", hl.EdgeIDs)
	}
}

func TestHighlightQuery_NoJoinsFallback(t *testing.T) {
	ids, edges := shopGraph()
	// Comma-separated FROM lists produce no ON clauses; every edge
	// between highlighted tables is accepted.
	hl := HighlightQuery(
		"SELECT * FROM shop.orders, shop.customers WHERE 1 = 1",
		ids, edges)

	if _, ok := hl.EdgeIDs["e-oc"]; !ok {
		t.Errorf("fallback should accept edges between highlighted nodes: %v", hl.EdgeIDs)
	}
	if _, ok := hl.EdgeIDs["e-oi"]; ok {
		t.Errorf("edges touching unhighlighted nodes must be excluded: %v", hl.EdgeIDs)
	}
}

func TestHighlightQuery_UnknownTableIgnored(t *testing.T) {
	ids, edges := shopGraph()
	hl := HighlightQuery("SELECT * FROM mystery_table", ids, edges)

	if len(hl.NodeIDs) != 0 || len(hl.EdgeIDs) != 0 {
		t.Errorf("unknown table should highlight nothing: %+v", hl)
	}
}
