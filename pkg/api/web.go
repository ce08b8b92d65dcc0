package api

var tmpl = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>SoundSeq</title>
    <style>
        :root { --bg: #2B303A; --field: #3B3F45; --accent: #C5FFA6; --accent-hover: #A4E694; --error: #FC8181; }
        body { background: var(--bg); color: #fff; font-family: system-ui, sans-serif; display: grid; place-items: center; min-height: 100vh; margin: 0; text-align: center; }
        h1 { margin: 0 0 1rem; font-size: 3rem; color: var(--accent); }
        p { font-size: 1.25rem; color: var(--accent); margin: 0 0 1.5rem; }
        input { width: 400px; max-width: 90vw; padding: 12px; margin-bottom: 1rem; border: 1px solid var(--accent); border-radius: 6px; background: var(--field); color: #fff; box-sizing: border-box; outline: none; font-size: 1.1rem; }
        button { padding: 14px 40px; border: none; border-radius: 6px; background: var(--accent); color: var(--bg); font-size: 1.1rem; cursor: pointer; transition: 0.2s; }
        button:hover { background: var(--accent-hover); }
        button:disabled { background: #555; cursor: not-allowed; }
        .error { color: var(--error); font-size: 1rem; margin-bottom: 1rem; }
        .title { color: #fff; font-weight: bold; }
        [hidden] { display: none !important; }
    </style>
</head>
<body>
    <main>
        <h1>SoundSeq</h1>

        <section id="editing" {{if .Submitted}}hidden{{end}}>
            <p>Apply SFX Intelligently Across Your Edits</p>
            <input id="link" placeholder="Enter YouTube link" value="{{.VideoLink}}" autocomplete="off">
            <div id="error" class="error" {{if not .ErrorMessage}}hidden{{end}}>{{.ErrorMessage}}</div>
            <div><button id="submit" {{if .Pending}}disabled{{end}}>Submit</button></div>
        </section>

        <section id="submitted" {{if not .Submitted}}hidden{{end}}>
            <p>Your video has been sent to process!</p>
            <p id="title" class="title" {{if not .Title}}hidden{{end}}>{{.Title}}</p>
            <button id="reset">Try New Video</button>
        </section>
    </main>

    <script>
        const $ = (id) => document.getElementById(id);
        let queue = Promise.resolve();

        const render = (s, title) => {
            $('editing').hidden = s.submitted;
            $('submitted').hidden = !s.submitted;
            if ($('link').value !== s.videoLink) $('link').value = s.videoLink;
            $('error').textContent = s.errorMessage || '';
            $('error').hidden = !s.errorMessage;
            $('submit').disabled = s.pending;
            $('title').textContent = title || '';
            $('title').hidden = !title;
        };

        const send = (path, body) => {
            queue = queue.then(async () => {
                try {
                    const resp = await fetch(path, {
                        method: 'POST',
                        headers: {'Content-Type': 'application/json'},
                        body: JSON.stringify(body || {})
                    });
                    const data = await resp.json();
                    if (data.state) render(data.state, data.state.title);
                } catch (err) {
                    console.error(path, err);
                }
            });
            return queue;
        };

        $('link').addEventListener('input', (e) => send('/api/input', {videoLink: e.target.value}));
        $('link').addEventListener('keydown', (e) => { if (e.key === 'Enter') $('submit').click(); });
        $('submit').addEventListener('click', () => {
            $('submit').disabled = true;
            send('/api/submit');
        });
        $('reset').addEventListener('click', () => send('/api/reset'));
    </script>
</body>
</html>
`
