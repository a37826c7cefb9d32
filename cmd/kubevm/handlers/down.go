package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/huh"
)

// confirmDown asks for confirmation before tearing the cluster down.
// Replaced in tests.
var confirmDown = func(clusterName string) (bool, error) {
	var confirmed bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Destroy cluster %q and all its VMs?", clusterName)).
		Description("This removes every node VM and the stored cluster state.").
		Affirmative("Destroy").
		Negative("Cancel").
		Value(&confirmed).
		Run()
	return confirmed, err
}

// Down handles the down command.
//
// It destroys all node VMs, workers first, then removes the cluster state
// directory. Unless force is set the user is asked to confirm.
func Down(ctx context.Context, configPath string, ov Overrides, force bool) error {
	cfg, err := resolveConfig(configPath, ov)
	if err != nil {
		return err
	}

	if !force {
		confirmed, err := confirmDown(cfg.ClusterName)
		if err != nil {
			return fmt.Errorf("confirmation canceled: %w", err)
		}
		if !confirmed {
			log.Println("Aborted")
			return nil
		}
	}

	rec, _, err := buildReconciler(cfg)
	if err != nil {
		return err
	}

	log.Printf("Destroying cluster %s", cfg.ClusterName)
	if err := rec.Down(ctx); err != nil {
		return fmt.Errorf("down failed: %w", err)
	}
	return nil
}
