package chat

// responseKind names the canned, terminal replies the classifier can return
// without calling the generation backend.
type responseKind string

const (
	kindGreeting  responseKind = "greeting"
	kindNonLegal  responseKind = "nonLegal"
	kindNoContext responseKind = "noContext"
)

// cannedResponses holds the assistant's fixed replies in all supported
// languages.
var cannedResponses = map[responseKind]map[string]string{
	kindGreeting: {
		"en": "Hello! I'm Nyayasahayak, your legal assistant. Ask me about your legal issues.",
		"hi": "नमस्ते! मैं न्यायसहायक हूं, आपका कानूनी सहायक। अपने कानूनी मुद्दों के बारे में पूछें।",
		"mr": "नमस्कार! मी न्यायसहायक आहे, तुमचा कायदेशीर सहाय्यक। तुमच्या कायदेशीर समस्यांबद्दल विचारा।",
		"gu": "નમસ્તે! હું ન્યાયસહાયક છું, તમારો કાનૂની સહાયક. તમારા કાનૂની મુદ્દાઓ વિશે પૂછો.",
		"pa": "ਸਤ ਸ੍ਰੀ ਅਕਾਲ! ਮੈਂ ਨਿਆਇਸਹਾਇਕ ਹਾਂ, ਤੁਹਾਡਾ ਕਾਨੂੰਨੀ ਸਹਾਇਕ। ਆਪਣੇ ਕਾਨੂੰਨੀ ਮੁੱਦਿਆਂ ਬਾਰੇ ਪੁੱਛੋ।",
		"ta": "வணக்கம்! நான் நியாயஸஹாயக், உங்கள் சட்ட உதவியாளர். உங்கள் சட்ட பிரச்சினைகள் பற்றி கேளுங்கள்.",
		"te": "నమస్కారం! నేను న్యాయసహాయక్, మీ చట్టపరమైన సహాయకుడు. మీ చట్టపరమైన సమస్యల గురించి అడగండి.",
	},
	kindNonLegal: {
		"en": "I'm Nyayasahayak, your legal assistant. Please ask me only about legal issues and your rights.",
		"hi": "मैं न्यायसहायक हूं, आपका कानूनी सहायक। कृपया मुझसे केवल कानूनी मुद्दों और आपके अधिकारों के बारे में पूछें।",
		"mr": "मी न्यायसहायक आहे, तुमचा कायदेशीर सहाय्यक। कृपया मला फक्त कायदेशीर समस्यां आणि तुमच्या हक्कांबद्दल विचारा।",
		"gu": "હું ન્યાયસહાયક છું, તમારો કાનૂની સહાયક. કૃપા કરીને મને ફક્ત કાનૂની મુદ્દાઓ અને તમારા અધિકારો વિશે પૂછો.",
		"pa": "ਮੈਂ ਨਿਆਇਸਹਾਇਕ ਹਾਂ, ਤੁਹਾਡਾ ਕਾਨੂੰਨੀ ਸਹਾਇਕ। ਕਿਰਪਾ ਕਰਕੇ ਮੈਨੂੰ ਸਿਰਫ ਕਾਨੂੰਨੀ ਮੁੱਦਿਆਂ ਅਤੇ ਤੁਹਾਡੇ ਅਧਿਕਾਰਾਂ ਬਾਰੇ ਪੁੱਛੋ।",
		"ta": "நான் நியாயஸஹாயக், உங்கள் சட்ட உதவியாளர். தயவுசெய்து சட்ட பிரச்சினைகள் மற்றும் உங்கள் உரிமைகள் பற்றி மட்டும் கேளுங்கள்.",
		"te": "నేను న్యాయసహాయక్, మీ చట్టపరమైన సహాయకుడు. దయచేసి నన్ను చట్టపరమైన సమస్యలు మరియు మీ హక్కుల గురించి మాత్రమే అడగండి.",
	},
	kindNoContext: {
		"en": "I could not find relevant legal information in the knowledge base for your query. Please try rephrasing your question or check if the knowledge base has been updated.",
		"hi": "मुझे आपके प्रश्न के लिए ज्ञान आधार में प्रासंगिक कानूनी जानकारी नहीं मिली। कृपया अपना प्रश्न फिर से लिखने का प्रयास करें।",
		"mr": "तुमच्या प्रश्नासाठी ज्ञान आधारामध्ये प्रासंगिक कायदेशीर माहिती सापडली नाही. कृपया तुमचा प्रश्न पुन्हा लिहा.",
		"gu": "તમારા પ્રશ્ન માટે જ્ઞાન આધારમાં સંબંધિત કાનૂની માહિતી મળી નથી. કૃપા કરીને તમારો પ્રશ્ન ફરીથી લખો.",
		"pa": "ਤੁਹਾਡੇ ਸਵਾਲ ਲਈ ਗਿਆਨ ਅਧਾਰ ਵਿੱਚ ਸੰਬੰਧਿਤ ਕਾਨੂੰਨੀ ਜਾਣਕਾਰੀ ਨਹੀਂ ਮਿਲੀ। ਕਿਰਪਾ ਕਰਕੇ ਆਪਣਾ ਸਵਾਲ ਦੁਬਾਰਾ ਲਿਖੋ।",
		"ta": "உங்கள் கேள்விக்கு அறிவு தளத்தில் தொடர்புடைய சட்ட தகவல் கிடைக்கவில்லை. தயவுசெய்து உங்கள் கேள்வியை மீண்டும் எழுதவும்.",
		"te": "మీ ప్రశ్నకు జ్ఞాన ఆధారంలో సంబంధిత చట్టపరమైన సమాచారం దొరకలేదు. దయచేసి మీ ప్రశ్నను మళ్లీ వ్రాయండి.",
	},
}

// cannedResponse returns the fixed reply of a kind in the requested
// language, falling back to English.
func cannedResponse(kind responseKind, lang string) string {
	byLang, ok := cannedResponses[kind]
	if !ok {
		return ""
	}
	if text, ok := byLang[lang]; ok {
		return text
	}
	return byLang["en"]
}
