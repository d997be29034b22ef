package formatter

type GeneralReportFormatter struct{}

func (f *GeneralReportFormatter) ReportTemplate() string {
	return `{{header .Rule .MaxLineNumWidth .Location -}}
{{snippet .Snippet .Line .MaxLineNumWidth .Padding -}}
{{underlineAndMessage .Message .Padding .UnderlineStart .UnderlineLength}}
`
}

type TrailingInputFormatter struct{}

func (f *TrailingInputFormatter) ReportTemplate() string {
	return `{{header .Rule .MaxLineNumWidth .Location -}}
{{snippet .Snippet .Line .MaxLineNumWidth .Padding -}}
{{underlineAndMessage .Message .Padding .UnderlineStart .UnderlineLength -}}
{{note .Note}}
`
}
