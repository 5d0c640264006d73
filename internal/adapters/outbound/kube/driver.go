// Package kube applies a generated manifest set to a cluster and polls
// Deployment readiness. It is advisory tooling: apply failures surface, but
// a Deployment that never becomes ready is a warning, not an error.
package kube

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/kubefold/kubefold/internal/domain/manifest"
)

const (
	pollInterval = 5 * time.Second
	pollAttempts = 24
)

// Driver drives a cluster through a typed clientset.
type Driver struct {
	client   kubernetes.Interface
	interval time.Duration
	attempts int
}

// New wraps an existing clientset; tests hand in a fake one.
func New(client kubernetes.Interface) *Driver {
	return &Driver{client: client, interval: pollInterval, attempts: pollAttempts}
}

// NewFromKubeconfig builds a Driver from a kubeconfig path, falling back to
// the default location and finally to in-cluster configuration.
func NewFromKubeconfig(kubeconfigPath string) (*Driver, error) {
	config, err := buildRestConfig(kubeconfigPath)
	if err != nil {
		return nil, err
	}
	config.Timeout = 10 * time.Second

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("creating kubernetes client: %w", err)
	}
	return New(client), nil
}

func buildRestConfig(kubeconfigPath string) (*rest.Config, error) {
	if kubeconfigPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			defaultPath := filepath.Join(home, ".kube", "config")
			if _, statErr := os.Stat(defaultPath); statErr == nil {
				kubeconfigPath = defaultPath
			}
		}
	}
	if kubeconfigPath != "" {
		config, err := clientcmd.BuildConfigFromFlags("", kubeconfigPath)
		if err != nil {
			return nil, fmt.Errorf("building kubeconfig from %s: %w", kubeconfigPath, err)
		}
		return config, nil
	}
	config, err := rest.InClusterConfig()
	if err != nil {
		return nil, fmt.Errorf("no kubeconfig available: %w", err)
	}
	return config, nil
}

// EnsureNamespace creates the namespace if it does not exist. The returned
// bool is true when this call created it.
func (d *Driver) EnsureNamespace(ctx context.Context, name string) (bool, error) {
	ns := &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: name}}
	_, err := d.client.CoreV1().Namespaces().Create(ctx, ns, metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating namespace %s: %w", name, err)
	}
	return true, nil
}

// Apply pushes every non-namespace resource in dependency order: config
// sources first, then storage, then workloads, then services.
func (d *Driver) Apply(ctx context.Context, set *manifest.Set) error {
	ns := set.Namespace.Name

	if err := d.applyConfigMap(ctx, ns, set.Config); err != nil {
		return err
	}
	if err := d.applySecret(ctx, ns, set.Secret); err != nil {
		return err
	}
	if set.DatabaseDeployment != nil {
		if err := d.applyConfigMap(ctx, ns, set.DatabaseInit); err != nil {
			return err
		}
		if err := d.applyPVC(ctx, ns, set.DatabasePVC); err != nil {
			return err
		}
		if err := d.applyDeployment(ctx, ns, set.DatabaseDeployment); err != nil {
			return err
		}
		if err := d.applyService(ctx, ns, set.DatabaseService); err != nil {
			return err
		}
	}
	for _, deploy := range set.Deployments {
		if err := d.applyDeployment(ctx, ns, deploy); err != nil {
			return err
		}
	}
	for _, svc := range set.Services {
		if err := d.applyService(ctx, ns, svc); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) applyConfigMap(ctx context.Context, ns string, cm *corev1.ConfigMap) error {
	existing, err := d.client.CoreV1().ConfigMaps(ns).Get(ctx, cm.Name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		_, err = d.client.CoreV1().ConfigMaps(ns).Create(ctx, cm, metav1.CreateOptions{})
		return wrapApply("configmap", cm.Name, err)
	}
	if err != nil {
		return wrapApply("configmap", cm.Name, err)
	}
	existing.Data = cm.Data
	_, err = d.client.CoreV1().ConfigMaps(ns).Update(ctx, existing, metav1.UpdateOptions{})
	return wrapApply("configmap", cm.Name, err)
}

func (d *Driver) applySecret(ctx context.Context, ns string, secret *corev1.Secret) error {
	existing, err := d.client.CoreV1().Secrets(ns).Get(ctx, secret.Name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		_, err = d.client.CoreV1().Secrets(ns).Create(ctx, secret, metav1.CreateOptions{})
		return wrapApply("secret", secret.Name, err)
	}
	if err != nil {
		return wrapApply("secret", secret.Name, err)
	}
	existing.StringData = secret.StringData
	_, err = d.client.CoreV1().Secrets(ns).Update(ctx, existing, metav1.UpdateOptions{})
	return wrapApply("secret", secret.Name, err)
}

// applyPVC only creates: a claim's storage request is immutable once bound.
func (d *Driver) applyPVC(ctx context.Context, ns string, pvc *corev1.PersistentVolumeClaim) error {
	_, err := d.client.CoreV1().PersistentVolumeClaims(ns).Create(ctx, pvc, metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		return nil
	}
	return wrapApply("pvc", pvc.Name, err)
}

func (d *Driver) applyDeployment(ctx context.Context, ns string, deploy *appsv1.Deployment) error {
	existing, err := d.client.AppsV1().Deployments(ns).Get(ctx, deploy.Name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		_, err = d.client.AppsV1().Deployments(ns).Create(ctx, deploy, metav1.CreateOptions{})
		return wrapApply("deployment", deploy.Name, err)
	}
	if err != nil {
		return wrapApply("deployment", deploy.Name, err)
	}
	existing.Spec = deploy.Spec
	_, err = d.client.AppsV1().Deployments(ns).Update(ctx, existing, metav1.UpdateOptions{})
	return wrapApply("deployment", deploy.Name, err)
}

func (d *Driver) applyService(ctx context.Context, ns string, svc *corev1.Service) error {
	existing, err := d.client.CoreV1().Services(ns).Get(ctx, svc.Name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		_, err = d.client.CoreV1().Services(ns).Create(ctx, svc, metav1.CreateOptions{})
		return wrapApply("service", svc.Name, err)
	}
	if err != nil {
		return wrapApply("service", svc.Name, err)
	}
	// Preserve the allocated ClusterIP; only the mutable parts move over.
	existing.Spec.Type = svc.Spec.Type
	existing.Spec.Selector = svc.Spec.Selector
	existing.Spec.Ports = svc.Spec.Ports
	_, err = d.client.CoreV1().Services(ns).Update(ctx, existing, metav1.UpdateOptions{})
	return wrapApply("service", svc.Name, err)
}

func wrapApply(kind, name string, err error) error {
	if err != nil {
		return fmt.Errorf("applying %s %s: %w", kind, name, err)
	}
	return nil
}
