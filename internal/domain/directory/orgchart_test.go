package directory

import "testing"

func TestBuildOrgChartNesting(t *testing.T) {
	employees := []Employee{
		{ID: "ceo", FirstName: "Ada", LastName: "Boss"},
		{ID: "mgr", FirstName: "Ben", LastName: "Lead", ManagerID: "ceo"},
		{ID: "dev1", FirstName: "Cay", LastName: "Dev", ManagerID: "mgr"},
		{ID: "dev2", FirstName: "Dre", LastName: "Dev", ManagerID: "mgr"},
	}

	roots := BuildOrgChart(employees)
	if len(roots) != 1 {
		t.Fatalf("expected one root, got %d", len(roots))
	}
	if roots[0].ID != "ceo" {
		t.Fatalf("expected ceo root, got %s", roots[0].ID)
	}
	if len(roots[0].Reports) != 1 || roots[0].Reports[0].ID != "mgr" {
		t.Fatalf("unexpected ceo reports: %+v", roots[0].Reports)
	}
	if len(roots[0].Reports[0].Reports) != 2 {
		t.Fatalf("expected two devs under mgr, got %d", len(roots[0].Reports[0].Reports))
	}
}

func TestBuildOrgChartUnknownManagerBecomesRoot(t *testing.T) {
	employees := []Employee{
		{ID: "a", FirstName: "Ann", LastName: "One", ManagerID: "gone"},
		{ID: "b", FirstName: "Bob", LastName: "Two"},
	}

	roots := BuildOrgChart(employees)
	if len(roots) != 2 {
		t.Fatalf("expected two roots, got %d", len(roots))
	}
}

func TestBuildOrgChartBreaksCycles(t *testing.T) {
	employees := []Employee{
		{ID: "a", FirstName: "Ann", LastName: "One", ManagerID: "b"},
		{ID: "b", FirstName: "Bob", LastName: "Two", ManagerID: "a"},
	}

	roots := BuildOrgChart(employees)
	if len(roots) == 0 {
		t.Fatal("expected cycle members to surface as roots")
	}

	// The walk must terminate; counting nodes proves no infinite nesting.
	total := 0
	var count func(nodes []*OrgNode)
	count = func(nodes []*OrgNode) {
		for _, node := range nodes {
			total++
			count(node.Reports)
		}
	}
	count(roots)
	if total != 2 {
		t.Fatalf("expected 2 nodes in tree, got %d", total)
	}
}

func TestBuildOrgChartSortsSiblingsByName(t *testing.T) {
	employees := []Employee{
		{ID: "z", FirstName: "Zoe", LastName: "Last"},
		{ID: "a", FirstName: "Amy", LastName: "First"},
	}

	roots := BuildOrgChart(employees)
	if len(roots) != 2 || roots[0].Name != "Amy First" {
		t.Fatalf("expected sorted roots, got %+v", roots)
	}
}
