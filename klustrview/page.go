// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "html/template"

// pageTemplate is the interactive page served at /. It is executed
// with the server's *config.Config.
//
// The page holds no widget state of its own. It forwards pointer
// events on data-mark elements to the session and swaps in each frame
// the session sends back.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>klustr</title>
<style>
body { font-family: sans-serif; margin: 1em; }
#status { color: #a00; min-height: 1.2em; }
#widget svg * { transition-property: opacity, stroke-width; }
</style>
</head>
<body>
<div id="widget" style="width:100%;max-width:{{.Width}}px;height:{{.Height}}px"></div>
<div id="status"></div>
<p>
<input type="file" id="file" accept=".json,application/json">
</p>
<script>
(function() {
  var widget = document.getElementById("widget");
  var status = document.getElementById("status");
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");

  var view = null;

  function send(msg) {
    if (ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify(msg));
  }

  // patch copies the style of every mark of svg onto the mark with
  // the same data-mark in the page, so CSS transitions can run. It
  // reports false if the marks don't line up.
  function patch(svg) {
    var cur = widget.querySelector("svg");
    var next = new DOMParser().parseFromString(svg, "image/svg+xml").documentElement;
    var marks = next.querySelectorAll("[data-mark]");
    if (!cur || cur.querySelectorAll("[data-mark]").length !== marks.length) return false;
    for (var i = 0; i < marks.length; i++) {
      var el = cur.querySelector('[data-mark="' + marks[i].getAttribute("data-mark") + '"]');
      if (!el) return false;
      var style = marks[i].getAttribute("style");
      if (style === null) el.removeAttribute("style");
      else if (el.getAttribute("style") !== style) el.setAttribute("style", style);
    }
    return true;
  }

  ws.onmessage = function(e) {
    var msg = JSON.parse(e.data);
    if (msg.type === "error") {
      status.textContent = msg.error;
      return;
    }
    status.textContent = "";
    // Events that keep the view only restyle marks; anything else
    // is a new drawing.
    if (!(msg.request === "event" && msg.view === view && patch(msg.svg))) {
      widget.innerHTML = msg.svg;
    }
    view = msg.view;
  };
  ws.onclose = function() { status.textContent = "disconnected"; };

  function markOf(e) {
    var el = e.target.closest("[data-mark]");
    return el ? parseInt(el.getAttribute("data-mark"), 10) : null;
  }
  function forward(kind) {
    return function(e) {
      var id = markOf(e);
      if (id === null) return;
      if (kind !== "click") {
        var rel = e.relatedTarget && e.relatedTarget.closest("[data-mark]");
        if (rel && rel.contains(e.target) || rel === e.target.closest("[data-mark]")) return;
      }
      send({type: "event", kind: kind, mark: id});
    };
  }
  widget.addEventListener("mouseover", forward("enter"));
  widget.addEventListener("mouseout", forward("leave"));
  widget.addEventListener("click", forward("click"));

  var resizeTimer;
  window.addEventListener("resize", function() {
    clearTimeout(resizeTimer);
    resizeTimer = setTimeout(function() {
      send({type: "resize", width: widget.clientWidth, height: widget.clientHeight});
    }, 100);
  });

  document.getElementById("file").addEventListener("change", function(e) {
    var f = e.target.files[0];
    if (!f) return;
    f.text().then(function(text) {
      try {
        send({type: "render", data: JSON.parse(text)});
      } catch (err) {
        status.textContent = f.name + ": " + err.message;
      }
    });
  });
})();
</script>
</body>
</html>
`))
