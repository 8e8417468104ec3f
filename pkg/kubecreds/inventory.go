package kubecreds

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/tools/clientcmd/api"
)

// UserSummary describes a kubeconfig user and whether it embeds the data
// Run needs.
type UserSummary struct {
	Name               string
	HasCertificateData bool
	HasKeyData         bool
	// Contexts are the names of the contexts that reference the user.
	Contexts []string
}

func (s UserSummary) Extractable() bool {
	return s.HasCertificateData && s.HasKeyData
}

// ListUsers returns every user in the kubeconfig at path, sorted by name.
func (e *Extractor) ListUsers(path string) ([]UserSummary, error) {
	data, err := afero.ReadFile(e.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read kubeconfig at %s", path)
	}
	cfg, err := clientcmd.Load(data)
	if err != nil {
		return nil, errors.Wrapf(ErrParse, "%v", err)
	}

	summaries := []UserSummary{}
	for _, name := range lo.Keys(cfg.AuthInfos) {
		info := cfg.AuthInfos[name]
		contexts := lo.Keys(lo.PickBy(cfg.Contexts, func(_ string, c *api.Context) bool {
			return c != nil && c.AuthInfo == name
		}))
		sort.Strings(contexts)
		summaries = append(summaries, UserSummary{
			Name:               name,
			HasCertificateData: info != nil && len(info.ClientCertificateData) > 0,
			HasKeyData:         info != nil && len(info.ClientKeyData) > 0,
			Contexts:           contexts,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries, nil
}
