package manifest

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/kubefold/kubefold/internal/domain"
)

func buildNamespace(name string) *corev1.Namespace {
	return &corev1.Namespace{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Namespace"},
		ObjectMeta: metav1.ObjectMeta{Name: name},
	}
}

func buildConfigMap(namespace string, inv domain.Inventory) *corev1.ConfigMap {
	data := map[string]string{}
	for _, v := range inv.Env.Config() {
		data[v.Name] = v.Value
	}
	// A discovered schema means the workloads talk to the synthesized
	// database Service, whatever the .env files pointed at.
	if inv.HasDatabase() {
		data[DatabaseHostEnvName] = DatabaseName
	}
	return &corev1.ConfigMap{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		ObjectMeta: metav1.ObjectMeta{Name: ConfigMapName, Namespace: namespace},
		Data:       data,
	}
}

func buildSecret(namespace string, env domain.EnvSet) *corev1.Secret {
	data := map[string]string{}
	for _, v := range env.Secrets() {
		data[v.Name] = v.Value
	}
	return &corev1.Secret{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Secret"},
		ObjectMeta: metav1.ObjectMeta{Name: SecretName, Namespace: namespace},
		Type:       corev1.SecretTypeOpaque,
		StringData: data,
	}
}

func buildDatabaseInitConfigMap(namespace string, schema *domain.SchemaFile) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		ObjectMeta: metav1.ObjectMeta{Name: DatabaseInitName, Namespace: namespace},
		Data:       map[string]string{"init.sql": schema.Content},
	}
}

func buildDatabasePVC(namespace, size string) *corev1.PersistentVolumeClaim {
	return &corev1.PersistentVolumeClaim{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "PersistentVolumeClaim"},
		ObjectMeta: metav1.ObjectMeta{Name: DatabasePVCName, Namespace: namespace},
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes: []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce},
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{
					corev1.ResourceStorage: resource.MustParse(size),
				},
			},
		},
	}
}

func buildDatabaseDeployment(namespace string) *appsv1.Deployment {
	labels := map[string]string{"app": DatabaseName}
	replicas := int32(1)

	probe := &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			Exec: &corev1.ExecAction{
				Command: []string{"pg_isready", "-U", "postgres"},
			},
		},
		InitialDelaySeconds: 10,
		PeriodSeconds:       10,
	}

	return &appsv1.Deployment{
		TypeMeta:   metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"},
		ObjectMeta: metav1.ObjectMeta{Name: DatabaseName, Namespace: namespace, Labels: labels},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{MatchLabels: labels},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{{
						Name:  DatabaseName,
						Image: DatabaseImage,
						Ports: []corev1.ContainerPort{{ContainerPort: DatabasePort}},
						EnvFrom: []corev1.EnvFromSource{
							configMapSource(),
							secretSource(),
						},
						VolumeMounts: []corev1.VolumeMount{
							{Name: "data", MountPath: "/var/lib/postgresql/data", SubPath: "pgdata"},
							{Name: "init-script", MountPath: "/docker-entrypoint-initdb.d"},
						},
						LivenessProbe:  probe,
						ReadinessProbe: probe,
					}},
					Volumes: []corev1.Volume{
						{
							Name: "data",
							VolumeSource: corev1.VolumeSource{
								PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{
									ClaimName: DatabasePVCName,
								},
							},
						},
						{
							Name: "init-script",
							VolumeSource: corev1.VolumeSource{
								ConfigMap: &corev1.ConfigMapVolumeSource{
									LocalObjectReference: corev1.LocalObjectReference{Name: DatabaseInitName},
								},
							},
						},
					},
				},
			},
		},
	}
}

func buildDatabaseService(namespace string) *corev1.Service {
	return &corev1.Service{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: metav1.ObjectMeta{Name: DatabaseName, Namespace: namespace},
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceTypeClusterIP,
			Selector: map[string]string{"app": DatabaseName},
			Ports: []corev1.ServicePort{{
				Port:       DatabasePort,
				TargetPort: intstr.FromInt32(DatabasePort),
			}},
		},
	}
}

func buildUnitDeployment(namespace string, unit domain.ServiceUnit, tag string, idleCLI bool) *appsv1.Deployment {
	labels := map[string]string{"app": unit.Name}
	replicas := int32(1)

	container := corev1.Container{
		Name:  unit.Name,
		Image: unit.ImageRef(tag),
		Ports: []corev1.ContainerPort{{ContainerPort: unit.Port}},
		EnvFrom: []corev1.EnvFromSource{
			configMapSource(),
			secretSource(),
		},
	}

	switch {
	case unit.CLI:
		// Non-serving units get no probes; optionally pin them to a
		// keepalive command so the pod stays Running without a server.
		if idleCLI {
			container.Command = []string{"tail", "-f", "/dev/null"}
		}
	default:
		probe := &corev1.Probe{
			ProbeHandler: corev1.ProbeHandler{
				HTTPGet: &corev1.HTTPGetAction{
					Path: "/health",
					Port: intstr.FromInt32(unit.Port),
				},
			},
			InitialDelaySeconds: 10,
			PeriodSeconds:       10,
		}
		container.LivenessProbe = probe
		container.ReadinessProbe = probe
	}

	return &appsv1.Deployment{
		TypeMeta:   metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"},
		ObjectMeta: metav1.ObjectMeta{Name: unit.Name, Namespace: namespace, Labels: labels},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{MatchLabels: labels},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{container},
				},
			},
		},
	}
}

func buildUnitService(namespace string, unit domain.ServiceUnit, nodePort bool) *corev1.Service {
	svc := &corev1.Service{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: metav1.ObjectMeta{Name: unit.Name, Namespace: namespace},
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceTypeClusterIP,
			Selector: map[string]string{"app": unit.Name},
			Ports: []corev1.ServicePort{{
				Port:       80,
				TargetPort: intstr.FromInt32(unit.Port),
			}},
		},
	}
	if nodePort {
		svc.Spec.Type = corev1.ServiceTypeNodePort
		svc.Spec.Ports[0].Port = unit.Port
	}
	return svc
}

func configMapSource() corev1.EnvFromSource {
	return corev1.EnvFromSource{
		ConfigMapRef: &corev1.ConfigMapEnvSource{
			LocalObjectReference: corev1.LocalObjectReference{Name: ConfigMapName},
		},
	}
}

func secretSource() corev1.EnvFromSource {
	return corev1.EnvFromSource{
		SecretRef: &corev1.SecretEnvSource{
			LocalObjectReference: corev1.LocalObjectReference{Name: SecretName},
		},
	}
}
