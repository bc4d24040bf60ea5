package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dm "github.com/iWorld-y/feature_radar/app/feature_radar/pkg/model"
)

func TestLoad_Corpus(t *testing.T) {
	tests := []struct {
		name     string
		csv      string
		column   string
		wantCol  string
		wantReqs []string
	}{
		{
			name:     "first column by default",
			csv:      "Feedback,Customer\nAdd CSV export,acme\nNeed Klaviyo integration,globex\n",
			column:   "",
			wantCol:  "Feedback",
			wantReqs: []string{"Add CSV export", "Need Klaviyo integration"},
		},
		{
			name:     "named column wins",
			csv:      "Customer,Requests\nacme,Add CSV export\nglobex,Please export to PDF\n",
			column:   "Requests",
			wantCol:  "Requests",
			wantReqs: []string{"Add CSV export", "Please export to PDF"},
		},
		{
			name:     "column match ignores case and spaces",
			csv:      "Customer, requests \nacme,Dark mode\n",
			column:   "Requests",
			wantCol:  " requests ",
			wantReqs: []string{"Dark mode"},
		},
		{
			name:     "missing named column falls back to first",
			csv:      "Ideas,Votes\nSSO,4\n",
			column:   "Requests",
			wantCol:  "Ideas",
			wantReqs: []string{"SSO"},
		},
		{
			name:     "drops blank and NA cells, keeps order and duplicates",
			csv:      "Requests\nB\n\n   \nNaN\nN/A\nA\nB\n",
			column:   "Requests",
			wantCol:  "Requests",
			wantReqs: []string{"B", "A", "B"},
		},
		{
			name:     "NA tokens padded with spaces",
			csv:      "Requests\n NaN \n\tnull\nSSO\n N/A\n",
			column:   "Requests",
			wantCol:  "Requests",
			wantReqs: []string{"SSO"},
		},
		{
			name:     "ragged rows and BOM",
			csv:      "\ufeffRequests,Other\nOnly one\nfoo,bar,baz\n,x\n",
			column:   "Requests",
			wantCol:  "Requests",
			wantReqs: []string{"Only one", "foo"},
		},
		{
			name:     "quoted cells with commas and newlines",
			csv:      "Requests\n\"Export, please\"\n\"multi\nline\"\n",
			column:   "Requests",
			wantCol:  "Requests",
			wantReqs: []string{"Export, please", "multi\nline"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Load(strings.NewReader(tt.csv))
			require.NoError(t, err)

			corpus, err := table.Corpus(tt.column)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCol, corpus.Column)
			assert.Equal(t, tt.wantReqs, corpus.Requests)
		})
	}
}

func TestLoad_InputErrors(t *testing.T) {
	_, err := Load(strings.NewReader(""))
	assert.ErrorIs(t, err, dm.ErrInput)

	_, err = Load(strings.NewReader("  \n\n"))
	assert.ErrorIs(t, err, dm.ErrInput)

	table, err := Load(strings.NewReader("Requests\n\n \nnan\n"))
	require.NoError(t, err)
	_, err = table.Corpus("Requests")
	assert.ErrorIs(t, err, dm.ErrInput)
	assert.Contains(t, err.Error(), `"Requests"`)
}

func TestTable_Preview(t *testing.T) {
	table, err := Load(strings.NewReader("Requests\na\nb\nc\nd\ne\nf\ng\n"))
	require.NoError(t, err)

	assert.Len(t, table.Preview(PreviewRows), 5)
	assert.Len(t, table.Preview(100), 7)
	assert.Equal(t, []string{"a"}, table.Preview(1)[0])
}
