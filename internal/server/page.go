package server

// indexHTML is the single-page front end. It is deliberately dependency-free:
// plain fetch against the JSON API and a WebSocket for the log stream.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>cliform</title>
<style>
  body { font-family: sans-serif; max-width: 60rem; margin: 1rem auto; padding: 0 1rem; }
  #layout { display: flex; gap: 2rem; }
  #tree, #panel { flex: 1; }
  #tree ul { list-style: none; padding-left: 1rem; }
  #tree .group { font-weight: bold; }
  #tree .leaf { cursor: pointer; color: #5436c4; }
  #tree .leaf:hover { text-decoration: underline; }
  .field { margin-bottom: .6rem; }
  .field label { display: block; font-size: .85rem; color: #444; }
  #log { background: #111; color: #ddd; font-family: monospace; font-size: .8rem;
         height: 18rem; overflow-y: scroll; padding: .5rem; white-space: pre-wrap; }
  .stderr { color: #ff7070; }
  button { margin-right: .5rem; }
</style>
</head>
<body>
<h1>cliform</h1>
<div id="layout">
  <div id="tree"><h2>Commands</h2><div id="nodes">loading…</div></div>
  <div id="panel">
    <h2 id="title">Select a command</h2>
    <div id="fields"></div>
    <p>
      <button id="run" disabled>Run</button>
      <button id="stop">Stop</button>
      <button id="clear">Clear log</button>
    </p>
    <div id="log"></div>
  </div>
</div>
<script>
let current = null;

function logLine(text, cls) {
  const log = document.getElementById("log");
  const div = document.createElement("div");
  if (cls) div.className = cls;
  div.textContent = text;
  log.appendChild(div);
  log.scrollTop = log.scrollHeight;
}

function renderTree(nodes, parent) {
  const ul = document.createElement("ul");
  for (const n of nodes) {
    const li = document.createElement("li");
    if (n.group) {
      li.textContent = n.name;
      li.className = "group";
      li.appendChild(renderTree(n.children || [], li));
    } else {
      li.textContent = n.name + (n.help ? " - " + n.help : "");
      li.className = "leaf";
      li.onclick = () => select(n);
    }
    ul.appendChild(li);
  }
  return ul;
}

function select(node) {
  current = node;
  document.getElementById("title").textContent = node.path;
  document.getElementById("run").disabled = false;
  const fields = document.getElementById("fields");
  fields.innerHTML = "";
  for (const p of node.parameters || []) {
    const div = document.createElement("div");
    div.className = "field";
    const label = document.createElement("label");
    label.textContent = p.name + (p.required ? " *" : "") +
      (p.help ? " - (" + p.help + ")" : "") + " [" + p.kind + "]";
    const input = document.createElement("input");
    input.dataset.name = p.name;
    input.dataset.type = p.type;
    if (p.type === "bool") {
      input.type = "checkbox";
      input.checked = p.default === "true";
    } else if (p.type === "int" || p.type === "float") {
      input.type = "number";
      if (p.type === "float") input.step = "0.1";
      input.value = p.default || "0";
    } else {
      input.type = "text";
      input.value = p.default || "";
    }
    div.appendChild(label);
    div.appendChild(input);
    fields.appendChild(div);
  }
}

async function run() {
  if (!current) return;
  const values = {};
  for (const input of document.querySelectorAll("#fields input")) {
    if (input.dataset.type === "bool") values[input.dataset.name] = input.checked;
    else values[input.dataset.name] = input.value;
  }
  const resp = await fetch("/api/run", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify({path: current.path, values: values}),
  });
  const body = await resp.json();
  if (!resp.ok) logLine(body.error || "run failed", "stderr");
}

document.getElementById("run").onclick = run;
document.getElementById("stop").onclick = () => fetch("/api/stop", {method: "POST"});
document.getElementById("clear").onclick = () => document.getElementById("log").innerHTML = "";

fetch("/api/commands").then(r => r.json()).then(nodes => {
  const container = document.getElementById("nodes");
  container.innerHTML = "";
  if (!nodes || nodes.length === 0) {
    container.textContent = "No commands found.";
    return;
  }
  container.appendChild(renderTree(nodes, container));
});

const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = (e) => {
  const ev = JSON.parse(e.data);
  if (ev.type === "output") logLine(ev.line, ev.stream === "stderr" ? "stderr" : "");
  else if (ev.type === "state") logLine("$ cliform " + (ev.argv || []).join(" "));
  else if (ev.type === "result") logLine("── " + ev.state + " (exit " + ev.exit_code + ")");
};
</script>
</body>
</html>
`
