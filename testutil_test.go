package pipes

import (
	"reflect"
	"testing"
)

func assertEqual(t *testing.T, name string, actual, expected any) {
	t.Helper()
	if !reflect.DeepEqual(actual, expected) {
		t.Fatalf("%s: got %v, expected %v", name, actual, expected)
	}
}
