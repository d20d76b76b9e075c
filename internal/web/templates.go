// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

package web

// indexHTMLTemplate lists every registered device with a link to its
// chart page.
const indexHTMLTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>AirBuddy</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 56rem; color: #222; }
h1 { font-size: 1.4rem; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: 0.4rem 0.8rem; border-bottom: 1px solid #e3e3e3; }
th { color: #555; font-weight: 600; }
a { color: #17649b; text-decoration: none; }
a:hover { text-decoration: underline; }
.revoked { color: #b33; }
.muted { color: #8a8a8a; }
footer { margin-top: 2rem; font-size: 0.8rem; color: #8a8a8a; }
</style>
</head>
<body>
<h1>AirBuddy sensors</h1>
{{if .Devices}}
<table>
<tr><th>Device</th><th>Location</th><th>Readings</th><th>Last seen</th><th></th></tr>
{{range .Devices}}
<tr>
<td><a href="/dashboard/{{.Device.ID}}">{{.Device.Name}}</a>{{if .Device.Revoked}} <span class="revoked">revoked</span>{{end}}</td>
<td>{{if .Device.Location}}{{.Device.Location}}{{else}}<span class="muted">&mdash;</span>{{end}}</td>
<td>{{.ReadingCount}}</td>
<td>{{formatTimePtr .Device.LastSeenAt}}</td>
<td class="muted">{{.Device.ID}}</td>
</tr>
{{end}}
</table>
{{else}}
<p class="muted">No devices registered yet.</p>
{{end}}
<footer>Generated {{formatTime .GeneratedAt}}</footer>
</body>
</html>
`

// dashboardHTMLTemplate is the per-device chart page. The SVG is
// rendered server-side; the script layer only adds hover tooltips via
// the hover endpoint and refreshes the page when the live feed reports
// a new reading.
const dashboardHTMLTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Device.Name}} - AirBuddy</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 56rem; color: #222; }
h1 { font-size: 1.4rem; }
nav a { color: #17649b; text-decoration: none; margin-right: 0.6rem; }
nav a.active { font-weight: 700; text-decoration: underline; }
.chart { position: relative; }
.chart svg { max-width: 100%; height: auto; }
#tooltip { position: absolute; display: none; background: #222; color: #fff; font-size: 0.75rem; padding: 0.25rem 0.5rem; border-radius: 3px; pointer-events: none; white-space: nowrap; }
.legend { display: flex; flex-wrap: wrap; gap: 1rem; margin-top: 0.6rem; font-size: 0.85rem; }
.legend .swatch { display: inline-block; width: 0.8em; height: 0.8em; margin-right: 0.3em; border-radius: 2px; }
.muted { color: #8a8a8a; }
</style>
</head>
<body>
<p><a href="/">&larr; all sensors</a></p>
<h1>{{.Device.Name}}{{if .Device.Location}} <span class="muted">{{.Device.Location}}</span>{{end}}</h1>
<nav>
{{$current := .RangeKey}}{{$id := .Device.ID}}
{{range .Ranges}}<a href="/dashboard/{{$id}}?range={{.}}"{{if eq . $current}} class="active"{{end}}>{{.}}</a>{{end}}
</nav>
<div class="chart" id="chart">
{{.SVG}}
<div id="tooltip"></div>
</div>
<div class="legend">
{{range .Legend}}
<span><span class="swatch" style="background:{{.Color}}"></span>{{.Label}}{{if .Value}} <strong>{{formatValue .Value}}</strong> {{.Unit}}{{end}}</span>
{{end}}
</div>
{{if .Latest}}
<p class="muted">Last reading {{formatUnix .Latest.RecordedAt}}</p>
{{end}}
{{if .Plan.Empty}}
<p class="muted">This device has not reported in the selected range.</p>
{{end}}
<script>
(function () {
  var chart = document.getElementById("chart");
  var svg = chart.querySelector("svg");
  var tooltip = document.getElementById("tooltip");
  if (!svg) { return; }

  var planWidth = {{.Plan.Layout.Width}};
  var hoverURL = "/api/v1/chart/{{.Device.ID}}/hover?range={{.RangeKey}}&x=";
  var pending = null;

  svg.addEventListener("mousemove", function (ev) {
    var rect = svg.getBoundingClientRect();
    var x = (ev.clientX - rect.left) * planWidth / rect.width;
    if (pending) { return; }
    pending = fetch(hoverURL + x.toFixed(1), { credentials: "same-origin" })
      .then(function (resp) { return resp.json(); })
      .then(function (body) {
        pending = null;
        var hit = body && body.data;
        if (!hit) { tooltip.style.display = "none"; return; }
        tooltip.textContent = hit.series + ": " + hit.value.toFixed(1);
        tooltip.style.left = (ev.clientX - rect.left + 12) + "px";
        tooltip.style.top = (ev.clientY - rect.top - 8) + "px";
        tooltip.style.display = "block";
      })
      .catch(function () { pending = null; });
  });
  svg.addEventListener("mouseleave", function () {
    tooltip.style.display = "none";
  });

  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  try {
    var sock = new WebSocket(proto + "//" + location.host + "/api/v1/ws");
    sock.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      if (msg.type === "reading" && msg.data && msg.data.device_id === "{{.Device.ID}}") {
        location.reload();
      }
    };
  } catch (e) { /* live refresh is optional */ }
})();
</script>
</body>
</html>
`
