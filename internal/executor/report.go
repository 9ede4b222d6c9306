package executor

import (
	"os"
	"path/filepath"
	"strings"

	jsonitor "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/polyglot-hello/polyglot/internal/common/apperrors"
)

var json = jsonitor.ConfigCompatibleWithStandardLibrary

// WriteReport saves the summary to path, as YAML when the extension is .yaml
// or .yml and as JSON otherwise.
func WriteReport(path string, s *Summary) apperrors.Error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(s)
	default:
		data, err = json.MarshalIndent(s, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return ErrReport.MsgErr("cannot encode summary", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return ErrReport.MsgErr("cannot write "+path, err)
	}
	return nil
}
