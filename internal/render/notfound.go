// internal/render/notfound.go
//
// Branded 404 document for hostnames that resolve to no site.  Always
// succeeds; the dispatcher serves it uncached with a 404 status.
package render

import "fmt"

// NotFound renders the minimal branded 404 page with one link back to
// the main application.
func NotFound(mainAppURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Site Not Found - sitegrove</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <style>
      body {
        font-family: "Helvetica Neue", Helvetica, Arial, sans-serif;
        margin: 0;
      }
    </style>
</head>
<body class="bg-slate-950 text-white min-h-screen flex items-center justify-center">
    <div class="text-center space-y-6 px-6">
      <h1 class="text-6xl font-black tracking-tighter">404</h1>
      <p class="text-xl text-slate-400 font-medium">This site doesn&rsquo;t exist.</p>
      <a href="%s" class="inline-block px-8 py-4 bg-blue-600 text-white font-bold rounded-2xl hover:bg-blue-700 transition-all uppercase tracking-tight text-sm">
        Back to sitegrove
      </a>
    </div>
</body>
</html>`, esc(mainAppURL))
}
