package directory

import "sort"

// BuildOrgChart derives the reporting tree from manager links. Employees
// whose manager is missing or unknown become roots. Cycles introduced by
// bad data are broken by treating the first employee encountered on a
// cycle as a root rather than recursing forever.
func BuildOrgChart(employees []Employee) []*OrgNode {
	nodes := make(map[string]*OrgNode, len(employees))
	managerOf := make(map[string]string, len(employees))
	for _, emp := range employees {
		nodes[emp.ID] = &OrgNode{
			ID:       emp.ID,
			Name:     emp.FirstName + " " + emp.LastName,
			Position: emp.Position,
		}
		managerOf[emp.ID] = emp.ManagerID
	}

	var roots []*OrgNode
	for _, emp := range employees {
		managerID := emp.ManagerID
		if managerID == "" || nodes[managerID] == nil || onCycle(emp.ID, managerOf) {
			roots = append(roots, nodes[emp.ID])
			continue
		}
		parent := nodes[managerID]
		parent.Reports = append(parent.Reports, nodes[emp.ID])
	}

	sortTree(roots)
	return roots
}

// onCycle reports whether following manager links from id ever returns
// to id. Walks at most len(managerOf) steps.
func onCycle(id string, managerOf map[string]string) bool {
	current := managerOf[id]
	for steps := 0; steps < len(managerOf); steps++ {
		if current == "" {
			return false
		}
		if current == id {
			return true
		}
		current = managerOf[current]
	}
	return false
}

func sortTree(nodes []*OrgNode) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })
	for _, node := range nodes {
		sortTree(node.Reports)
	}
}
