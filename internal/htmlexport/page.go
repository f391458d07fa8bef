package htmlexport

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<script src="https://cdn.tailwindcss.com"></script>
<link href="https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700;800&family=Poppins:wght@600;700;800&display=swap" rel="stylesheet">
<style>
* { font-family: 'Inter', -apple-system, BlinkMacSystemFont, sans-serif; }
h1, h2, h3 { font-family: 'Poppins', sans-serif; }
.slide { height: 100vh; display: none; opacity: 0; transform: scale(0.95); transition: all 0.4s cubic-bezier(0.4, 0, 0.2, 1); overflow: hidden; }
.slide.active { display: flex; opacity: 1; transform: scale(1); }
@keyframes fadeInUp { from { opacity: 0; transform: translateY(30px); } to { opacity: 1; transform: translateY(0); } }
.fade-in { animation: fadeInUp 0.6s ease-out; }
.bullet-point { position: relative; padding-left: 2rem; }
.bullet-point::before { content: ""; position: absolute; left: 0; top: 0.6rem; width: 12px; height: 12px; background: linear-gradient(135deg, #f97316, #fb923c); border-radius: 50%; }
.progress-bar { position: fixed; top: 0; left: 0; height: 4px; background: linear-gradient(90deg, #667eea, #764ba2, #f093fb, #4facfe); transition: width 0.3s ease; z-index: 9999; }
</style>
</head>
<body class="{{.Theme.Bg}} {{.Theme.Text}}">
<div class="progress-bar" id="progressBar"></div>
<div id="presentation" class="relative">
{{range .Slides}}{{if .IsTitle}}
<div class="slide active" data-slide="{{.Index}}">
  <div class="w-full h-full {{$.Theme.Primary}} flex items-center justify-center p-8">
    <div class="text-center space-y-6 fade-in">
      <h1 class="text-6xl font-extrabold text-white mb-6 leading-tight px-4">{{.Title}}</h1>
      <div class="h-1 w-32 mx-auto bg-gradient-to-r from-transparent via-white to-transparent rounded-full"></div>
      {{if .Subtitle}}<p class="text-2xl text-white/90 font-light max-w-3xl mx-auto px-4">{{.Subtitle}}</p>{{end}}
    </div>
  </div>
</div>
{{else}}
<div class="slide" data-slide="{{.Index}}">
  <div class="w-full h-full p-8 {{$.Theme.ContentBg}} overflow-auto">
    <div class="{{$.Theme.Primary}} text-white p-6 rounded-2xl shadow-2xl mb-6">
      <h2 class="text-4xl font-bold">{{.Title}}</h2>
      <div class="mt-3 h-1.5 w-24 bg-white/40 rounded-full"></div>
    </div>
    <div class="{{$.Theme.CardBg}} backdrop-blur-sm border {{$.Theme.Border}} rounded-2xl p-6 shadow-xl">
      <div class="{{if .Wants}}grid grid-cols-2 gap-8{{end}}">
        <div class="space-y-4">
          {{range .Bullets}}<div class="bullet-point text-lg leading-relaxed {{$.Theme.Text}} fade-in p-3 rounded-xl">{{.}}</div>
          {{end}}
        </div>
        {{if .Wants}}{{if .Image}}
        <div class="flex items-center justify-center">
          <img src="{{.Image}}" alt="{{.Title}}" class="w-full h-80 object-cover rounded-2xl shadow-xl">
        </div>
        {{else}}
        <div class="flex items-center justify-center">
          <div class="w-full h-80 bg-gradient-to-br from-indigo-100 via-purple-100 to-pink-100 rounded-2xl flex items-center justify-center border-4 border-dashed border-indigo-300 shadow-xl">
            <div class="text-center">
              <p class="text-indigo-600 font-bold text-base">Visual Content</p>
              <p class="text-indigo-400 text-sm mt-1">Add image or diagram</p>
            </div>
          </div>
        </div>
        {{end}}{{end}}
      </div>
    </div>
    {{if .Notes}}
    <div class="mt-4 p-4 bg-gradient-to-r from-blue-500 to-indigo-600 text-white border-l-4 border-yellow-400 rounded-xl shadow-xl hidden" id="notes-{{.Index}}">
      <h3 class="font-bold text-base mb-2">Speaker Notes</h3>
      <p class="text-white/95 text-sm leading-relaxed">{{.Notes}}</p>
    </div>
    {{end}}
  </div>
</div>
{{end}}{{end}}
</div>
<div class="fixed bottom-8 left-1/2 transform -translate-x-1/2 flex items-center space-x-3 bg-white/95 backdrop-blur-md rounded-full px-8 py-4 shadow-2xl border border-gray-200/50">
  <button onclick="prevSlide()" class="p-3 hover:bg-gray-100 rounded-full" aria-label="Previous slide">&#8592;</button>
  <div class="flex items-center space-x-2 px-4">
    <span id="currentSlide" class="font-bold text-gray-800">1</span>
    <span class="text-gray-400">/</span>
    <span id="totalSlides" class="text-gray-600">{{.Count}}</span>
  </div>
  <button onclick="nextSlide()" class="p-3 hover:bg-gray-100 rounded-full" aria-label="Next slide">&#8594;</button>
  <button onclick="toggleNotes()" class="p-3 hover:bg-gray-100 rounded-full text-sm" title="Toggle notes (N)">N</button>
</div>
<script>
let current = 0;
const slides = document.querySelectorAll('.slide');
let notesVisible = false;

function showSlide(i) {
  slides.forEach(s => s.classList.remove('active'));
  slides[i].classList.add('active');
  document.getElementById('currentSlide').textContent = i + 1;
  document.getElementById('progressBar').style.width = ((i + 1) / slides.length * 100) + '%';
}
function nextSlide() { if (current < slides.length - 1) showSlide(++current); }
function prevSlide() { if (current > 0) showSlide(--current); }
function toggleNotes() {
  notesVisible = !notesVisible;
  document.querySelectorAll('[id^="notes-"]').forEach(n => n.classList.toggle('hidden', !notesVisible));
}
document.addEventListener('keydown', e => {
  if (e.key === 'ArrowRight' || e.key === ' ') nextSlide();
  else if (e.key === 'ArrowLeft') prevSlide();
  else if (e.key === 'n' || e.key === 'N') toggleNotes();
  else if (e.key === 'f' || e.key === 'F') document.documentElement.requestFullscreen();
});
showSlide(0);
</script>
</body>
</html>
`))
