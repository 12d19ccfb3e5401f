package pipeline

import (
	"reflect"
	"testing"

	"github.com/matzehuels/bpmndot/pkg/bpmn"
)

func loadFixture(t *testing.T, name string) *bpmn.Graph {
	t.Helper()
	g, err := bpmn.Load("../bpmn/testdata/" + name)
	if err != nil {
		t.Fatalf("Load(%s) error = %v", name, err)
	}
	return g
}

func TestErrorHandlingIDs(t *testing.T) {
	g := loadFixture(t, "error_handling.bpmn")

	got := ErrorHandlingIDs(g, DefaultExceptionSubprocessName)
	want := []string{"BE", "EH", "notify"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ErrorHandlingIDs() = %v, want %v", got, want)
	}
}

func TestPruneErrorHandling(t *testing.T) {
	g := loadFixture(t, "error_handling.bpmn")

	pruned := PruneErrorHandling(g, DefaultExceptionSubprocessName)

	// Two hops past the handler survives.
	want := []string{"start", "A", "B", "end", "f1", "f2", "f3", "failed"}
	if got := pruned.IDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("PruneErrorHandling() ids = %v, want %v", got, want)
	}

	if g.Len() != 14 {
		t.Errorf("input graph changed: Len() = %d, want 14", g.Len())
	}
}

func TestPruneErrorHandlingOtherName(t *testing.T) {
	g := loadFixture(t, "error_handling.bpmn")

	pruned := PruneErrorHandling(g, "Recover")

	for _, id := range []string{"BE", "f4"} {
		if _, ok := pruned.Item(id); ok {
			t.Errorf("%s should be removed with the boundary event", id)
		}
	}
	for _, id := range []string{"EH", "f5", "notify"} {
		if _, ok := pruned.Item(id); !ok {
			t.Errorf("%s should survive when the handler name does not match", id)
		}
	}
}

func TestPruneWithoutErrorHandling(t *testing.T) {
	g := loadFixture(t, "simple.bpmn")

	pruned := PruneErrorHandling(g, DefaultExceptionSubprocessName)
	if !reflect.DeepEqual(pruned.IDs(), g.IDs()) {
		t.Errorf("PruneErrorHandling() = %v, want unchanged %v", pruned.IDs(), g.IDs())
	}
}
