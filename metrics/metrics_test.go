package metrics

import "testing"

func TestCounts(t *testing.T) {
	before := Counts()["hemisphere/splits"]
	VectorSplits.Inc(2)
	after := Counts()["hemisphere/splits"]
	if after-before != 2 {
		t.Errorf("got delta %d, want 2", after-before)
	}
	if _, ok := Counts()["rgeo/locate/hits"]; !ok {
		t.Error("missing registered counter")
	}
}
