package report

// htmlTemplate is the main HTML template for the report
const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Name}} - Lifecycle Benchmark Report</title>
    <style>
        :root {
            --bg-primary: #ffffff;
            --bg-secondary: #f8fafc;
            --text-primary: #1e293b;
            --text-secondary: #64748b;
            --border-color: #e2e8f0;
            --accent-primary: #3b82f6;
            --accent-success: #22c55e;
            --accent-error: #ef4444;
            --shadow: 0 1px 3px rgba(0, 0, 0, 0.1);
        }

        * { margin: 0; padding: 0; box-sizing: border-box; }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background-color: var(--bg-secondary);
            color: var(--text-primary);
            line-height: 1.6;
        }

        .container { max-width: 1200px; margin: 0 auto; padding: 2rem; }
        header { margin-bottom: 2rem; }
        header h1 { font-size: 1.75rem; }
        header .meta { color: var(--text-secondary); font-size: 0.875rem; }

        .badge {
            display: inline-block;
            padding: 0.125rem 0.75rem;
            border-radius: 999px;
            font-size: 0.75rem;
            font-weight: 600;
            text-transform: uppercase;
            color: #fff;
        }
        .badge.pass { background: var(--accent-success); }
        .badge.fail { background: var(--accent-error); }

        .card {
            background: var(--bg-primary);
            border: 1px solid var(--border-color);
            border-radius: 0.5rem;
            box-shadow: var(--shadow);
            padding: 1.5rem;
            margin-bottom: 1.5rem;
        }
        .card h2 { font-size: 1.25rem; margin-bottom: 0.75rem; }
        .card h3 { font-size: 1rem; margin: 1rem 0 0.5rem; color: var(--text-secondary); }

        table { width: 100%; border-collapse: collapse; font-size: 0.875rem; }
        th, td { text-align: left; padding: 0.375rem 0.75rem; border-bottom: 1px solid var(--border-color); }
        th { color: var(--text-secondary); font-weight: 600; }
        td.num { font-variant-numeric: tabular-nums; }
        tr.fail td { color: var(--accent-error); }

        .error { color: var(--accent-error); font-weight: 600; }

        svg.chart { width: 100%; height: 120px; background: var(--bg-secondary); border-radius: 0.25rem; }
        svg.chart polyline { fill: none; stroke: var(--accent-primary); stroke-width: 2; }

        details summary { cursor: pointer; color: var(--accent-primary); margin-top: 1rem; }
        footer { color: var(--text-secondary); font-size: 0.75rem; text-align: center; margin-top: 2rem; }
    </style>
</head>
<body>
<div class="container">
    <header>
        <h1>{{if .Name}}{{.Name}}{{else}}Lifecycle benchmark{{end}} <span class="badge {{statusClass .Passed}}">{{if .Passed}}passed{{else}}failed{{end}}</span></h1>
        {{if .Description}}<p>{{.Description}}</p>{{end}}
        <p class="meta">Started {{.StartTime.Format "2006-01-02 15:04:05"}} &middot; took {{formatDuration .Duration}} &middot; {{len .Runs}} runs</p>
    </header>

    <section class="card">
        <h2>Summary</h2>
        <table>
            <thead>
                <tr>
                    <th>Run</th><th>Kind</th><th>Component</th><th>Samples</th>
                    <th>Mean</th><th>Median</th><th>StdDev</th><th>Min</th><th>Max</th><th>P95</th><th>Status</th>
                </tr>
            </thead>
            <tbody>
            {{range .Runs}}
                <tr class="{{statusClass .Passed}}">
                    <td><a href="#{{.Anchor}}">{{.Name}}</a></td>
                    <td>{{.Config.Kind}}</td>
                    <td>{{.Config.Component}}</td>
                    {{if .Result}}
                    <td class="num">{{.Result.SampleCount}}/{{.Result.RequestedSamples}}{{if .Result.TimedOut}} (timed out){{end}}</td>
                    <td class="num">{{formatMillis .Result.Mean}}</td>
                    <td class="num">{{formatMillis .Result.Median}}</td>
                    <td class="num">{{formatMillis .Result.StdDev}}</td>
                    <td class="num">{{formatMillis .Result.Min}}</td>
                    <td class="num">{{formatMillis .Result.Max}}</td>
                    <td class="num">{{formatMillis .Result.P95}}</td>
                    {{else}}
                    <td colspan="7" class="error">{{.Error}}</td>
                    {{end}}
                    <td><span class="badge {{statusClass .Passed}}">{{if .Passed}}pass{{else}}fail{{end}}</span></td>
                </tr>
            {{end}}
            </tbody>
        </table>
    </section>

    {{range .Runs}}
    <section class="card" id="{{.Anchor}}">
        <h2>{{.Name}} <span class="badge {{statusClass .Passed}}">{{if .Passed}}pass{{else}}fail{{end}}</span></h2>
        {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
        {{with .Result}}
        <p class="meta">Run {{.RunID}} &middot; {{.Cycles}} cycles &middot; {{formatDuration .RunTime}}</p>

        <h3>Elapsed (ms)</h3>
        <table>
            <tr><th>Mean</th><th>Median</th><th>StdDev</th><th>P70</th><th>P95</th><th>P99</th><th>HDR P50</th><th>HDR P90</th><th>HDR P99</th></tr>
            <tr>
                <td class="num">{{formatMillis .Mean}}</td>
                <td class="num">{{formatMillis .Median}}</td>
                <td class="num">{{formatMillis .StdDev}}</td>
                <td class="num">{{formatMillis .P70}}</td>
                <td class="num">{{formatMillis .P95}}</td>
                <td class="num">{{formatMillis .P99}}</td>
                <td class="num">{{formatMillis .Quantiles.P50}}</td>
                <td class="num">{{formatMillis .Quantiles.P90}}</td>
                <td class="num">{{formatMillis .Quantiles.P99}}</td>
            </tr>
        </table>

        {{if hasLayout .}}
        <h3>Layout (ms)</h3>
        <table>
            <tr><th>Mean</th><th>Median</th><th>StdDev</th><th>Min</th><th>Max</th><th>P95</th></tr>
            <tr>
                <td class="num">{{formatMillis .Layout.Mean}}</td>
                <td class="num">{{formatMillis .Layout.Median}}</td>
                <td class="num">{{formatMillis .Layout.StdDev}}</td>
                <td class="num">{{formatMillis .Layout.Min}}</td>
                <td class="num">{{formatMillis .Layout.Max}}</td>
                <td class="num">{{formatMillis .Layout.P95}}</td>
            </tr>
        </table>
        {{end}}
        {{end}}

        {{if .Points}}
        <h3>Samples (0 to {{printf "%.2f" .ChartMax}}ms)</h3>
        <svg class="chart" viewBox="0 0 600 120" preserveAspectRatio="none">
            <polyline points="{{.Points}}"/>
        </svg>
        {{end}}

        {{if .Thresholds}}
        <h3>Thresholds</h3>
        <table>
            <tr><th>Expression</th><th>Value</th><th>Status</th><th>Message</th></tr>
            {{range .Thresholds}}
            <tr class="{{statusClass .Passed}}">
                <td><code>{{.Expression}}</code></td>
                <td class="num">{{.Value}}</td>
                <td>{{if .Passed}}pass{{else}}fail{{end}}</td>
                <td>{{.Message}}</td>
            </tr>
            {{end}}
        </table>
        {{end}}

        {{with .Result}}
        <details>
            <summary>{{len .Samples}} samples</summary>
            <table>
                <tr><th>#</th><th>Cycle</th><th>Elapsed</th><th>Layout</th></tr>
                {{range $i, $s := .Samples}}
                <tr>
                    <td class="num">{{$i}}</td>
                    <td class="num">{{$s.Cycle}}</td>
                    <td class="num">{{formatSample $s.Elapsed}}</td>
                    <td class="num">{{formatSample $s.Layout}}</td>
                </tr>
                {{end}}
            </table>
        </details>
        {{end}}
    </section>
    {{end}}

    <footer>Generated by cyclebench at {{.GeneratedAt.Format "2006-01-02 15:04:05"}}</footer>
</div>
</body>
</html>
`
