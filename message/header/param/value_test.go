package param_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/postbox/message/header/param"
)

func TestParse(t *testing.T) {
	t.Parallel()

	pv, err := param.Parse(`text/plain; charset="UTF-8"; Format=flowed`)
	require.NoError(t, err)

	assert.Equal(t, "text/plain", pv.Value())
	assert.Equal(t, "text/plain", pv.MediaType())
	assert.Equal(t, "text", pv.Type())
	assert.Equal(t, "plain", pv.Subtype())
	assert.Equal(t, "UTF-8", pv.Charset())
	assert.Equal(t, "flowed", pv.Parameter("format"))
	assert.Equal(t, map[string]string{"charset": "UTF-8", "format": "flowed"}, pv.Parameters())

	_, err = param.Parse("not a media type;;;")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	t.Parallel()

	pv := param.New("inline")
	assert.Equal(t, "inline", pv.Presentation())
	assert.Equal(t, "", pv.Type())
	assert.Equal(t, "", pv.Subtype())
	assert.Equal(t, "inline", pv.String())
}

func TestModify(t *testing.T) {
	t.Parallel()

	pv := param.NewWithParams("multipart/mixed", map[string]string{
		"Boundary": "abc",
	})

	npv := param.Modify(pv,
		param.Change("multipart/related"),
		param.Set(param.Charset, "utf-8"),
		param.Delete(param.Boundary),
	)

	assert.Equal(t, "multipart/mixed", pv.Value())
	assert.Equal(t, "abc", pv.Boundary())

	assert.Equal(t, "multipart/related", npv.Value())
	assert.Equal(t, "", npv.Boundary())
	assert.Equal(t, "utf-8", npv.Charset())
}

func TestValue_String(t *testing.T) {
	t.Parallel()

	pv := param.NewWithParams("attachment", map[string]string{
		param.Filename: "report 2024.pdf",
	})
	assert.Equal(t, `attachment; filename="report 2024.pdf"`, pv.String())
	assert.Equal(t, "report 2024.pdf", pv.Filename())

	pv = param.NewWithParams("attachment", map[string]string{
		param.Filename: "résumé.pdf",
	})
	assert.Equal(t, "attachment; filename*=utf-8''r%C3%A9sum%C3%A9.pdf", pv.String())

	pv = param.NewWithParams("text/plain", map[string]string{
		param.Charset: "utf-8",
	})
	assert.Equal(t, "text/plain; charset=utf-8", pv.String())

	pv = param.NewWithParams("bad type here", map[string]string{"a": "b"})
	assert.Equal(t, "bad type here; a=b", pv.String())
}
