package favorites

import (
	"testing"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name        string
		favs        []string
		id          string
		want        []string
		wantChanged bool
	}{
		{
			name:        "add to empty set",
			favs:        nil,
			id:          "r1",
			want:        []string{"r1"},
			wantChanged: true,
		},
		{
			name:        "add new member preserves order",
			favs:        []string{"r1", "r2"},
			id:          "r3",
			want:        []string{"r1", "r2", "r3"},
			wantChanged: true,
		},
		{
			name:        "add existing member is a no-op",
			favs:        []string{"r1", "r2"},
			id:          "r1",
			want:        []string{"r1", "r2"},
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := Add(tt.favs, tt.id)
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			assertSet(t, got, tt.want)
		})
	}
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name        string
		favs        []string
		id          string
		want        []string
		wantChanged bool
	}{
		{
			name:        "remove present member",
			favs:        []string{"r1", "r2", "r3"},
			id:          "r2",
			want:        []string{"r1", "r3"},
			wantChanged: true,
		},
		{
			name:        "remove absent member is a no-op",
			favs:        []string{"r1"},
			id:          "r2",
			want:        []string{"r1"},
			wantChanged: false,
		},
		{
			name:        "remove from empty set",
			favs:        nil,
			id:          "r1",
			want:        nil,
			wantChanged: false,
		},
		{
			name:        "remove id that never referenced a recipe",
			favs:        []string{"r1"},
			id:          "never-existed",
			want:        []string{"r1"},
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := Remove(tt.favs, tt.id)
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			assertSet(t, got, tt.want)
		})
	}
}

func TestAddRemoveRoundTrip(t *testing.T) {
	favs, changed := Add(nil, "r1")
	if !changed {
		t.Fatal("expected first add to change the set")
	}

	favs, changed = Add(favs, "r1")
	if changed {
		t.Fatal("expected second add to be a no-op")
	}
	assertSet(t, favs, []string{"r1"})

	favs, changed = Remove(favs, "r1")
	if !changed {
		t.Fatal("expected remove to change the set")
	}
	assertSet(t, favs, nil)
}

func TestContains(t *testing.T) {
	favs := []string{"r1", "r2"}
	if !Contains(favs, "r1") {
		t.Error("Contains(favs, r1) = false, want true")
	}
	if Contains(favs, "r3") {
		t.Error("Contains(favs, r3) = true, want false")
	}
	if Contains(nil, "r1") {
		t.Error("Contains(nil, r1) = true, want false")
	}
}

func assertSet(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("member %d = %q, want %q", i, got[i], want[i])
		}
	}
}
