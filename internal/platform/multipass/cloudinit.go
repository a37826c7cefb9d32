package multipass

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// cloudInitParams feeds the user-data template for a node VM.
type cloudInitParams struct {
	Hostname          string
	Address           string
	MAC               string
	AuthorizedKey     string
	KubernetesVersion string
}

// userData is the cloud-init document launched with every node. It pins the
// deterministic cluster address and runs the node image initializer: kernel
// modules, sysctls, containerd, and the kubeadm toolchain. Everything in
// runcmd is idempotent, so re-running it on an existing VM is safe.
type userData struct {
	Hostname          string      `yaml:"hostname"`
	ManageEtcHosts    bool        `yaml:"manage_etc_hosts"`
	SSHAuthorizedKeys []string    `yaml:"ssh_authorized_keys"`
	WriteFiles        []writeFile `yaml:"write_files"`
	RunCmd            []string    `yaml:"runcmd"`
}

type writeFile struct {
	Path        string `yaml:"path"`
	Permissions string `yaml:"permissions"`
	Content     string `yaml:"content"`
}

type netplanDoc struct {
	Network struct {
		Version   int                     `yaml:"version"`
		Ethernets map[string]netplanEther `yaml:"ethernets"`
	} `yaml:"network"`
}

type netplanEther struct {
	Match     map[string]string `yaml:"match"`
	Addresses []string          `yaml:"addresses"`
}

// renderUserData produces the #cloud-config document for a node.
func renderUserData(p cloudInitParams) ([]byte, error) {
	netplan, err := renderNetplan(p.MAC, p.Address)
	if err != nil {
		return nil, err
	}

	doc := userData{
		Hostname:          p.Hostname,
		ManageEtcHosts:    true,
		SSHAuthorizedKeys: []string{p.AuthorizedKey},
		WriteFiles: []writeFile{
			{
				Path:        "/etc/netplan/60-kubevm.yaml",
				Permissions: "0600",
				Content:     netplan,
			},
			{
				Path:        "/etc/modules-load.d/kubevm.conf",
				Permissions: "0644",
				Content:     "overlay\nbr_netfilter\n",
			},
			{
				Path:        "/etc/sysctl.d/99-kubevm.conf",
				Permissions: "0644",
				Content: "net.bridge.bridge-nf-call-iptables = 1\n" +
					"net.bridge.bridge-nf-call-ip6tables = 1\n" +
					"net.ipv4.ip_forward = 1\n",
			},
		},
		RunCmd: imageInitCommands(p.KubernetesVersion),
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render cloud-init: %w", err)
	}
	return append([]byte("#cloud-config\n"), out...), nil
}

func renderNetplan(mac, address string) (string, error) {
	var doc netplanDoc
	doc.Network.Version = 2
	doc.Network.Ethernets = map[string]netplanEther{
		"cluster0": {
			Match:     map[string]string{"macaddress": mac},
			Addresses: []string{address + "/24"},
		},
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to render netplan: %w", err)
	}
	return string(out), nil
}

// imageInitCommands is the node image initializer. It brings a fresh Ubuntu
// VM to the point where it can host or join a control plane.
func imageInitCommands(k8sVersion string) []string {
	repo := fmt.Sprintf("https://pkgs.k8s.io/core:/stable:/v%s/deb/", k8sVersion)
	return []string{
		"netplan apply",
		"swapoff -a",
		"sed -i '/\\sswap\\s/s/^/#/' /etc/fstab",
		"modprobe overlay",
		"modprobe br_netfilter",
		"sysctl --system",
		"apt-get update",
		"DEBIAN_FRONTEND=noninteractive apt-get install -y apt-transport-https ca-certificates curl gpg containerd",
		"mkdir -p /etc/containerd",
		"containerd config default | sed 's/SystemdCgroup = false/SystemdCgroup = true/' > /etc/containerd/config.toml",
		"systemctl restart containerd",
		"mkdir -p /etc/apt/keyrings",
		fmt.Sprintf("test -f /etc/apt/keyrings/kubernetes.gpg || curl -fsSL %sRelease.key | gpg --dearmor -o /etc/apt/keyrings/kubernetes.gpg", repo),
		fmt.Sprintf("echo 'deb [signed-by=/etc/apt/keyrings/kubernetes.gpg] %s /' > /etc/apt/sources.list.d/kubernetes.list", repo),
		"apt-get update",
		"DEBIAN_FRONTEND=noninteractive apt-get install -y kubelet kubeadm kubectl",
		"apt-mark hold kubelet kubeadm kubectl",
		"systemctl enable kubelet",
	}
}
