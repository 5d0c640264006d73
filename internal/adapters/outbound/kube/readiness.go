package kube

import (
	"context"
	"fmt"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/kubefold/kubefold/internal/domain"
)

// WaitForReady polls each named Deployment's ready-replica count at a fixed
// interval up to a fixed attempt ceiling. A deployment that never comes up
// yields a timeout status; it never turns into an error, so a slow rollout
// does not fail a run whose artifacts are already correct.
func (d *Driver) WaitForReady(ctx context.Context, namespace string, names []string) []domain.DeployStatus {
	statuses := make([]domain.DeployStatus, 0, len(names))
	for _, name := range names {
		statuses = append(statuses, d.waitForOne(ctx, namespace, name))
	}
	return statuses
}

func (d *Driver) waitForOne(ctx context.Context, namespace, name string) domain.DeployStatus {
	for attempt := 0; attempt < d.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return domain.DeployStatus{Name: name, Message: "wait cancelled"}
			case <-time.After(d.interval):
			}
		}

		deploy, err := d.client.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return domain.DeployStatus{Name: name, Message: fmt.Sprintf("status check failed: %v", err)}
		}

		want := int32(1)
		if deploy.Spec.Replicas != nil {
			want = *deploy.Spec.Replicas
		}
		if deploy.Status.ReadyReplicas >= want {
			return domain.DeployStatus{
				Name:    name,
				Ready:   true,
				Message: fmt.Sprintf("%d/%d replicas ready", deploy.Status.ReadyReplicas, want),
			}
		}
	}
	return domain.DeployStatus{
		Name:    name,
		Message: fmt.Sprintf("not ready after %s", time.Duration(d.attempts)*d.interval),
	}
}
