package firebase

import (
	"context"
	"testing"
)

func TestInitFirebaseRequiresCredentialsPath(t *testing.T) {
	app, err := InitFirebase(context.Background(), "")
	if err == nil {
		t.Fatal("expected error for empty credentials path")
	}
	if app != nil {
		t.Errorf("expected nil app, got %+v", app)
	}
}
