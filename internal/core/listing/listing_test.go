package listing

import (
	"fmt"
	"testing"
	"time"

	"github.com/staffdesk/admin-api/internal/core/domain"
)

func fixtureUsers() []domain.User {
	return []domain.User{
		{UserID: "1", Username: "alice", Email: "alice@example.com", Role: domain.RoleAdmin, Status: domain.StatusActive},
		{UserID: "2", Username: "bob", Email: "bob@example.com", Role: domain.RoleUser, Status: domain.StatusInactive},
	}
}

func usernames(p Page[domain.User]) []string {
	out := make([]string, 0, len(p.Items))
	for _, u := range p.Items {
		out = append(out, u.Username)
	}
	return out
}

func TestUsers_RoleFilter(t *testing.T) {
	p := Users(fixtureUsers(), Query{Role: domain.RoleAdmin})
	if got := usernames(p); len(got) != 1 || got[0] != "alice" {
		t.Fatalf("role=admin: got %v, want [alice]", got)
	}
}

func TestUsers_SearchTerm(t *testing.T) {
	p := Users(fixtureUsers(), Query{Search: "bo"})
	if got := usernames(p); len(got) != 1 || got[0] != "bob" {
		t.Fatalf("search=bo: got %v, want [bob]", got)
	}
}

func TestUsers_SearchCaseInsensitiveUsername(t *testing.T) {
	p := Users(fixtureUsers(), Query{Search: "ALI"})
	if got := usernames(p); len(got) != 1 || got[0] != "alice" {
		t.Fatalf("search=ALI: got %v, want [alice]", got)
	}
}

func TestUsers_SearchMatchesEmail(t *testing.T) {
	p := Users(fixtureUsers(), Query{Search: "bob@example"})
	if got := usernames(p); len(got) != 1 || got[0] != "bob" {
		t.Fatalf("search on email: got %v, want [bob]", got)
	}
}

func TestUsers_SearchNoMatchExcludesAll(t *testing.T) {
	p := Users(fixtureUsers(), Query{Search: "zzz"})
	if len(p.Items) != 0 {
		t.Fatalf("search=zzz: got %v, want empty", usernames(p))
	}
	if p.TotalPages != 1 || p.Page != 1 {
		t.Fatalf("empty result must still report page 1 of 1, got page %d of %d", p.Page, p.TotalPages)
	}
}

func TestUsers_FilterAllPassesEverything(t *testing.T) {
	p := Users(fixtureUsers(), Query{Role: FilterAll, Status: FilterAll})
	if p.Total != 2 {
		t.Fatalf("role=all status=all: got %d rows, want 2", p.Total)
	}
}

func TestUsers_StatusFilter(t *testing.T) {
	p := Users(fixtureUsers(), Query{Status: domain.StatusInactive})
	if got := usernames(p); len(got) != 1 || got[0] != "bob" {
		t.Fatalf("status=inactive: got %v, want [bob]", got)
	}
}

func TestUsers_SortAscDescReversed(t *testing.T) {
	users := []domain.User{
		{Username: "carol", Email: "c@x.com"},
		{Username: "alice", Email: "a@x.com"},
		{Username: "bob", Email: "b@x.com"},
	}
	for _, col := range []string{"username", "email"} {
		asc := Users(users, Query{Sort: SortSpec{Column: col, Direction: Asc}})
		desc := Users(users, Query{Sort: SortSpec{Column: col, Direction: Desc}})
		n := len(asc.Items)
		for i := 0; i < n; i++ {
			if asc.Items[i].Username != desc.Items[n-1-i].Username {
				t.Fatalf("column %s: desc is not the reverse of asc: %v vs %v",
					col, usernames(asc), usernames(desc))
			}
		}
	}
}

func TestUsers_SortByCreatedAt(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	users := []domain.User{
		{Username: "new", CreatedAt: base.Add(48 * time.Hour)},
		{Username: "old", CreatedAt: base},
		{Username: "mid", CreatedAt: base.Add(24 * time.Hour)},
	}
	p := Users(users, Query{Sort: SortSpec{Column: "created_at", Direction: Asc}})
	if got := usernames(p); got[0] != "old" || got[2] != "new" {
		t.Fatalf("created_at asc: got %v", got)
	}
}

func TestUsers_InputNotReordered(t *testing.T) {
	users := []domain.User{{Username: "zed"}, {Username: "amy"}}
	Users(users, Query{Sort: SortSpec{Column: "username", Direction: Asc}})
	if users[0].Username != "zed" {
		t.Fatalf("input slice was reordered")
	}
}

func TestPaginate_WindowsAndPageCount(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 25, 30} {
		users := make([]domain.User, n)
		for i := range users {
			users[i].Username = fmt.Sprintf("user%03d", i)
		}

		wantPages := (n + DefaultPageSize - 1) / DefaultPageSize
		if wantPages < 1 {
			wantPages = 1
		}

		first := Users(users, Query{Page: 1})
		if first.TotalPages != wantPages {
			t.Fatalf("n=%d: total pages %d, want %d", n, first.TotalPages, wantPages)
		}
		if n > 0 && first.Items[0].Username != "user000" {
			t.Fatalf("n=%d: page 1 must start at index 0, got %s", n, first.Items[0].Username)
		}

		last := Users(users, Query{Page: wantPages})
		wantLen := n % DefaultPageSize
		if wantLen == 0 && n > 0 {
			wantLen = DefaultPageSize
		}
		if len(last.Items) != wantLen {
			t.Fatalf("n=%d: last page length %d, want %d", n, len(last.Items), wantLen)
		}
	}
}

func TestPaginate_PageClampedToBounds(t *testing.T) {
	users := make([]domain.User, 15)
	for i := range users {
		users[i].Username = fmt.Sprintf("user%03d", i)
	}

	below := Users(users, Query{Page: 0})
	if below.Page != 1 {
		t.Fatalf("page 0 must clamp to 1, got %d", below.Page)
	}
	above := Users(users, Query{Page: 99})
	if above.Page != 2 {
		t.Fatalf("page 99 must clamp to last page 2, got %d", above.Page)
	}
	if len(above.Items) != 5 {
		t.Fatalf("clamped last page length %d, want 5", len(above.Items))
	}
}

func TestSortSpec_Toggle(t *testing.T) {
	s := SortSpec{Column: "username", Direction: Asc}

	s = s.Toggle("username")
	if s.Direction != Desc {
		t.Fatalf("toggling the active column must flip to desc")
	}
	s = s.Toggle("username")
	if s.Direction != Asc {
		t.Fatalf("toggling twice must restore ascending")
	}

	s = SortSpec{Column: "username", Direction: Desc}
	s = s.Toggle("email")
	if s.Column != "email" || s.Direction != Asc {
		t.Fatalf("selecting a new column must reset to ascending, got %+v", s)
	}
}

func TestToggleTwiceRestoresInitialOrder(t *testing.T) {
	users := []domain.User{{Username: "carol"}, {Username: "alice"}, {Username: "bob"}}
	s := SortSpec{Column: "username", Direction: Asc}

	initial := Users(users, Query{Sort: s})
	s = s.Toggle("username").Toggle("username")
	again := Users(users, Query{Sort: s})

	for i := range initial.Items {
		if initial.Items[i].Username != again.Items[i].Username {
			t.Fatalf("double toggle changed order: %v vs %v", usernames(initial), usernames(again))
		}
	}
}

func TestEmployees_SearchAndSort(t *testing.T) {
	emps := []domain.Employee{
		{EmpID: "E2", Name: "Bob Ops", Department: "operations"},
		{EmpID: "E1", Name: "Alice Eng", Department: "engineering"},
	}

	p := Employees(emps, Query{Search: "eng"})
	if len(p.Items) != 1 || p.Items[0].EmpID != "E1" {
		t.Fatalf("search=eng: got %+v", p.Items)
	}

	sorted := Employees(emps, Query{Sort: SortSpec{Column: "emp_id", Direction: Asc}})
	if sorted.Items[0].EmpID != "E1" || sorted.Items[1].EmpID != "E2" {
		t.Fatalf("emp_id asc: got %+v", sorted.Items)
	}
}
